// export_catalog.go writes the built-in reference tables as catalog YAML,
// as a starting point for a custom catalog file.
//
// Usage:
//
//	go run scripts/export_catalog.go -link 837 -out catalog.yaml
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/MikeSquared-Agency/Bandplan/internal/catalog"
)

func main() {
	link := flag.Float64("link", catalog.DefaultLinkDistance, "link distance in km")
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	c := catalog.Default(*link)
	if err := c.Validate(); err != nil {
		logger.Error("built-in catalog is invalid", "error", err)
		os.Exit(1)
	}
	data, err := catalog.Marshal(c)
	if err != nil {
		logger.Error("marshal failed", "error", err)
		os.Exit(1)
	}

	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("write failed", "path", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("catalog written", "path", *out, "scenarios", len(c.Scenarios))
}
