package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natpasukit/jenkins/internal/infra/fingerprint"
	"github.com/natpasukit/jenkins/pkg/report"
)

func runFingerprint(args []string) int {
	fs := flag.NewFlagSet("fingerprint", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var reportPath string
	var buildDir string

	fs.StringVar(&reportPath, "report", "", "artifact report YAML path")
	fs.StringVar(&buildDir, "build-dir", "", "build artifact directory (default: report directory)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if reportPath == "" {
		fmt.Fprintln(os.Stderr, "fingerprint requires --report")
		return 1
	}

	rep, err := report.Load(reportPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load report: %v\n", err)
		return 1
	}
	if buildDir == "" {
		buildDir = filepath.Dir(reportPath)
	}

	// Same set the server fingerprints: the main artifact (the descriptor
	// when the build produced nothing else), then attached in order.
	entries := make([]report.Entry, 0, 1+len(rep.Attached))
	if rep.Main != nil {
		entries = append(entries, *rep.Main)
	} else {
		entries = append(entries, rep.Descriptor)
	}
	entries = append(entries, rep.Attached...)

	for _, e := range entries {
		sha256Hex, md5Hex, size, err := fingerprint.Digest(filepath.Join(buildDir, e.File))
		if err != nil {
			fmt.Fprintf(os.Stderr, "fingerprint %s: %v\n", e.File, err)
			return 1
		}
		fmt.Printf("%s sha256=%s md5=%s size=%d\n", e.File, sha256Hex, md5Hex, size)
	}
	return 0
}
