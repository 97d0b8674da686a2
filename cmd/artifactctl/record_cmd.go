package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/natpasukit/jenkins/pkg/client"
	"github.com/natpasukit/jenkins/pkg/report"
)

func runRecord(args []string) int {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var reportPath string
	var server string
	var project string
	var number int64
	var toolchainVersion string
	var apiKey string
	var outPath string
	var timeoutSec int

	fs.StringVar(&reportPath, "report", "", "artifact report YAML path")
	fs.StringVar(&server, "server", "", "artifactd base URL")
	fs.StringVar(&project, "project", "", "project name")
	fs.Int64Var(&number, "build", 0, "build number")
	fs.StringVar(&toolchainVersion, "toolchain-version", "", "toolchain version the build ran with")
	fs.StringVar(&apiKey, "api-key", "", "admin API key")
	fs.StringVar(&outPath, "out", "", "output path for the stored record JSON (default stdout)")
	fs.IntVar(&timeoutSec, "timeout", 30, "request timeout in seconds")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if reportPath == "" || server == "" || project == "" || number <= 0 {
		fmt.Fprintln(os.Stderr, "record requires --report, --server, --project, and --build")
		return 1
	}

	rep, err := report.Load(reportPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load report: %v\n", err)
		return 1
	}

	c := client.NewClient(server, client.WithAPIKey(apiKey))
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()
	rec, err := c.RecordArtifacts(ctx, project, number, client.RecordRequest{
		ToolchainVersion: toolchainVersion,
		Descriptor:       rep.Descriptor,
		Main:             rep.Main,
		Attached:         rep.Attached,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "record artifacts: %v\n", err)
		return 1
	}

	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal record: %v\n", err)
		return 1
	}
	if err := writeOutput(outPath, payload); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}
