// Package main provides the entry point for the text-indexer CLI.
package main

import (
	"os"

	"github.com/gcbaptista/go-text-indexer/cmd/text_indexer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
