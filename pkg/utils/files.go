package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// StdoutTarget is the output argument that selects standard output.
const StdoutTarget = "-"

// GetPathInfo resolves relPath to an absolute, cleaned path and derives the
// output file that sits next to it with extension ext.
func GetPathInfo(relPath, ext string) (fullPath, outPath string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", fmt.Errorf("resolve %s: %w", relPath, err)
	}
	return fullPath, DefaultOutputPath(fullPath, ext), nil
}

// DefaultOutputPath replaces the extension of inPath with ext. Only the final
// path element is considered, so "./src/prog.asm" becomes "./src/prog.hex".
func DefaultOutputPath(inPath, ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	cur := filepath.Ext(inPath)
	if cur == "" {
		return inPath + ext
	}
	return strings.TrimSuffix(inPath, cur) + ext
}

// ResolveOutput decides where the assembled text goes. It returns
// toStdout=true when out is "-", the derived path when out is empty, and out
// itself otherwise.
func ResolveOutput(in, out, ext string) (path string, toStdout bool) {
	switch out {
	case StdoutTarget:
		return "", true
	case "":
		return DefaultOutputPath(in, ext), false
	default:
		return out, false
	}
}
