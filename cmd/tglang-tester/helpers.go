package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// readInput reads a file, or stdin for "-"
func readInput(in io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(in)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
