// Package buildinfo exposes build metadata injected at link time:
//
//	go build -ldflags "-X github.com/cotrip/cotrip/internal/buildinfo.Version=1.2.0 \
//	  -X github.com/cotrip/cotrip/internal/buildinfo.Date=$(date -u +%F) \
//	  -X github.com/cotrip/cotrip/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes the version banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
