//go:build ignore

// Minifies static/ into dist/static for production. Run with: go run build.go
package main

import (
	"fmt"
	"log"
	"path/filepath"

	"khamthai/internal/assets"
)

func main() {
	results, err := assets.MinifyDir(assets.NewMinifier(), "static", filepath.Join("dist", "static"))
	if err != nil {
		log.Fatal("Error minifying static assets: ", err)
	}

	for _, r := range results {
		if r.Minified {
			fmt.Printf("📦 %s: %d bytes → %d bytes (%.1f%% reduction)\n", r.Src, r.Before, r.After, r.Reduction())
		} else {
			fmt.Printf("📄 %s copied\n", r.Src)
		}
	}
	fmt.Println("✅ Minification complete!")
	fmt.Println("📁 Minified files are in the 'dist' directory")
}
