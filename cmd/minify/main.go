package main

import (
	"flag"
	"fmt"
	"log"

	"khamthai/internal/assets"
)

func main() {
	var (
		inputFile  = flag.String("input", "", "Input file path")
		outputFile = flag.String("output", "", "Output file path")
		fileType   = flag.String("type", "", "File type (css, js or html), inferred from the input extension when empty")
	)
	flag.Parse()

	if *inputFile == "" || *outputFile == "" {
		log.Fatal("Usage: go run ./cmd/minify -input=<file> -output=<file> [-type=<css|js|html>]")
	}

	name := *fileType
	if name == "" {
		name = *inputFile
	}
	mediaType, ok := assets.MediaType(name)
	if !ok {
		log.Fatalf("Unsupported file type: %s (supported: css, js, html)", name)
	}

	r, err := assets.MinifyFile(assets.NewMinifier(), *inputFile, *outputFile, mediaType)
	if err != nil {
		log.Fatalf("Failed to minify %s: %v", *inputFile, err)
	}
	fmt.Printf("Successfully minified %s -> %s (%.1f%% reduction)\n", r.Src, r.Dst, r.Reduction())
}
