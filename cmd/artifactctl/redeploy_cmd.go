package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/natpasukit/jenkins/pkg/client"
)

func runRedeploy(args []string) int {
	fs := flag.NewFlagSet("redeploy", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var server string
	var project string
	var number int64
	var repoID string
	var repoURL string
	var uniqueVersions bool
	var apiKey string
	var timeoutSec int

	fs.StringVar(&server, "server", "", "artifactd base URL")
	fs.StringVar(&project, "project", "", "project name")
	fs.Int64Var(&number, "build", 0, "build number")
	fs.StringVar(&repoID, "repo-id", "", "repository id (default: repository url)")
	fs.StringVar(&repoURL, "repo-url", "", "repository url (default: server configured repository)")
	fs.BoolVar(&uniqueVersions, "unique-versions", true, "deploy snapshots with unique timestamped versions")
	fs.StringVar(&apiKey, "api-key", "", "admin API key")
	fs.IntVar(&timeoutSec, "timeout", 300, "request timeout in seconds")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if server == "" || project == "" || number <= 0 {
		fmt.Fprintln(os.Stderr, "redeploy requires --server, --project, and --build")
		return 1
	}

	uniqueSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "unique-versions" {
			uniqueSet = true
		}
	})
	var repo *client.Repository
	if repoURL != "" || repoID != "" || uniqueSet {
		repo = &client.Repository{ID: repoID, URL: repoURL}
		if uniqueSet {
			repo.UniqueVersions = &uniqueVersions
		}
	}

	c := client.NewClient(server, client.WithAPIKey(apiKey))
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()
	res, err := c.Redeploy(ctx, project, number, repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redeploy: %v\n", err)
		return 1
	}

	for _, line := range res.Lines {
		fmt.Println(line)
	}
	fmt.Printf("deployed to %s (unique versions: %t)\n", res.Repository, res.UniqueVersions)
	return 0
}
