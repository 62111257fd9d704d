// Package assets minifies the browser client for production builds.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

var mediaTypes = map[string]string{
	".css":  "text/css",
	".html": "text/html",
	".js":   "application/javascript",
}

// Result describes one processed file.
type Result struct {
	Src, Dst      string
	Before, After int
	Minified      bool
}

// Reduction returns the size saving in percent.
func (r Result) Reduction() float64 {
	if r.Before == 0 {
		return 0
	}
	return float64(r.Before-r.After) / float64(r.Before) * 100
}

// NewMinifier returns a minifier for CSS, HTML and JavaScript.
func NewMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("application/javascript", js.Minify)
	return m
}

// MediaType maps a file extension or a short name (css, js, html) to the
// media type the minifier expects.
func MediaType(nameOrPath string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(nameOrPath))
	if ext == "" {
		ext = "." + strings.ToLower(nameOrPath)
	}
	mt, ok := mediaTypes[ext]
	return mt, ok
}

// MinifyFile writes the minified src to dst, creating parent directories.
func MinifyFile(m *minify.M, src, dst, mediaType string) (Result, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return Result{}, err
	}
	out, err := m.Bytes(mediaType, data)
	if err != nil {
		return Result{}, fmt.Errorf("minify %s: %w", src, err)
	}
	if err := writeFile(dst, out); err != nil {
		return Result{}, err
	}
	return Result{Src: src, Dst: dst, Before: len(data), After: len(out), Minified: true}, nil
}

// MinifyDir mirrors srcDir into dstDir, minifying known types and copying
// everything else unchanged.
func MinifyDir(m *minify.M, srcDir, dstDir string) ([]Result, error) {
	var results []Result
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(dstDir, rel)

		if mt, ok := MediaType(path); ok {
			r, err := MinifyFile(m, path, dst, mt)
			if err != nil {
				return err
			}
			results = append(results, r)
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := writeFile(dst, data); err != nil {
			return err
		}
		results = append(results, Result{Src: path, Dst: dst, Before: len(data), After: len(data)})
		return nil
	})
	return results, err
}

func writeFile(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
