// Command ssmlfuzz generates randomized SSML documents with known faults,
// plus a manifest of the faults and the check IDs they should trigger.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/pflag"

	"github.com/adammathes/ssmlcheck/internal/fuzz"
)

func main() {
	count := pflag.IntP("count", "n", 100, "Number of documents to generate.")
	seed := pflag.Int64("seed", 42, "Random seed.")
	pflag.Parse()

	outDir := "testdata/synthetic"
	if pflag.NArg() > 0 {
		outDir = pflag.Arg(0)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", outDir, err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))

	var samples []fuzz.Sample
	for i := 1; i <= *count; i++ {
		s := fuzz.Generate(i, rng)

		path := filepath.Join(outDir, s.Filename)
		if err := os.WriteFile(path, []byte(s.Text), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			os.Exit(1)
		}
		samples = append(samples, s)

		faultNames := make([]string, len(s.Faults))
		for j, f := range s.Faults {
			faultNames[j] = f.Name + "=" + f.CheckID
		}
		faultStr := "valid (no faults)"
		if len(faultNames) > 0 {
			faultStr = strings.Join(faultNames, ", ")
		}
		fmt.Printf("[%3d] %s %-6s: %s\n", i, s.Filename, s.Platform, faultStr)
	}

	manifestPath := filepath.Join(outDir, "manifest.json")
	manifestData, _ := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(samples, "", "  ")
	if err := os.WriteFile(manifestPath, manifestData, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write manifest: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nGenerated %d SSML documents in %s\n", *count, outDir)
	fmt.Printf("Manifest: %s\n", manifestPath)
}
