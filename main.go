package main

import (
	"github.com/perfect5th/simplesite/cmd"
)

func main() {
	cmd.Execute()
}
