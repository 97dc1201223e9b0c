package site

import "github.com/pkg/errors"

// ErrWriteFailure marks any failure to create or write files under the
// output directory. A write failure aborts the whole build rather than
// leaving a silently incomplete site.
var ErrWriteFailure = errors.New("output write failed")
