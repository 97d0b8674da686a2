package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/natpasukit/jenkins/internal/infra/toolchain"
)

func runInstall(args []string) int {
	fs := flag.NewFlagSet("install", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var reportPath string
	var buildDir string
	var project string
	var number int64
	var toolchainVersion string
	var localRepo string
	var timeoutSec int

	fs.StringVar(&reportPath, "report", "", "artifact report YAML path")
	fs.StringVar(&buildDir, "build-dir", "", "build artifact directory (default: report directory)")
	fs.StringVar(&project, "project", "local", "project name")
	fs.Int64Var(&number, "build", 1, "build number")
	fs.StringVar(&toolchainVersion, "toolchain-version", "3.9.6", "toolchain version the build ran with")
	fs.StringVar(&localRepo, "local-repo", "local-repo", "local repository root")
	fs.IntVar(&timeoutSec, "timeout", 300, "install timeout in seconds")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if reportPath == "" {
		fmt.Fprintln(os.Stderr, "install requires --report")
		return 1
	}

	rec, err := loadRecord(reportPath, buildDir, project, number, toolchainVersion)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load report: %v\n", err)
		return 1
	}
	tc := toolchain.New(toolchain.Options{LocalRepoPath: localRepo})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()
	if err := rec.Install(ctx, tc); err != nil {
		fmt.Fprintf(os.Stderr, "install: %v\n", err)
		return 1
	}

	fmt.Printf("installed %s into %s\n", rec.Main().FileName, localRepo)
	for _, a := range rec.Attached() {
		fmt.Printf("installed %s into %s\n", a.FileName, localRepo)
	}
	return 0
}
