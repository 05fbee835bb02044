// Command formidable validates values against schema documents, replays
// scripted form sessions and inspects saved drafts.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/formidable/cmd/formidable/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
