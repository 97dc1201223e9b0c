package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/perfect5th/simplesite/config"
)

// SetupRouter serves a built site from cfg.Output, mounted at cfg.Root so
// the preview matches how the site will be deployed. With a non-bare root,
// requests to "/" are redirected into the site.
func SetupRouter(cfg config.SiteConfig) *mux.Router {
	router := mux.NewRouter()

	h := &fileHandler{output: cfg.Output}
	router.NotFoundHandler = http.HandlerFunc(h.notFound)

	if cfg.Root == "/" {
		router.PathPrefix("/").Handler(h)
		return router
	}

	prefix := strings.TrimSuffix(cfg.Root, "/")
	router.Handle("/", http.RedirectHandler(cfg.Root, http.StatusFound))
	router.Handle(prefix, http.RedirectHandler(cfg.Root, http.StatusMovedPermanently))
	router.PathPrefix(cfg.Root).Handler(http.StripPrefix(prefix, h))

	return router
}

// fileHandler maps request paths onto the output tree, serving index.html
// for directory requests.
type fileHandler struct {
	output string
}

func (h *fileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := path.Clean("/" + r.URL.Path)

	fp := filepath.Join(h.output, filepath.FromSlash(strings.TrimPrefix(p, "/")))
	info, err := os.Stat(fp)
	if err == nil && info.IsDir() {
		fp = filepath.Join(fp, "index.html")
		_, err = os.Stat(fp)
	}
	if err != nil {
		h.notFound(w, r)
		return
	}

	http.ServeFile(w, r, fp)
}

// notFound serves the site's own 404 page when the build produced one,
// falling back to a plain 404.
func (h *fileHandler) notFound(w http.ResponseWriter, r *http.Request) {
	body, err := os.ReadFile(filepath.Join(h.output, "404.html"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(body)
}
