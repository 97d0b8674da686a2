package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/natpasukit/jenkins/internal/infra/buildlog"
	"github.com/natpasukit/jenkins/internal/infra/toolchain"
)

func runDeploy(args []string) int {
	fs := flag.NewFlagSet("deploy", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var reportPath string
	var buildDir string
	var project string
	var number int64
	var toolchainVersion string
	var repoID string
	var repoURL string
	var uniqueVersions bool
	var username string
	var password string
	var signingKey string
	var signingPassphrase string
	var localRepo string
	var timeoutSec int

	fs.StringVar(&reportPath, "report", "", "artifact report YAML path")
	fs.StringVar(&buildDir, "build-dir", "", "build artifact directory (default: report directory)")
	fs.StringVar(&project, "project", "local", "project name")
	fs.Int64Var(&number, "build", 1, "build number")
	fs.StringVar(&toolchainVersion, "toolchain-version", "3.9.6", "toolchain version the build ran with")
	fs.StringVar(&repoID, "repo-id", "", "repository id (default: repository url)")
	fs.StringVar(&repoURL, "repo-url", "", "repository url")
	fs.BoolVar(&uniqueVersions, "unique-versions", true, "deploy snapshots with unique timestamped versions")
	fs.StringVar(&username, "username", "", "repository username")
	fs.StringVar(&password, "password", "", "repository password")
	fs.StringVar(&signingKey, "signing-key", "", "armored signing key path")
	fs.StringVar(&signingPassphrase, "signing-passphrase", "", "signing key passphrase")
	fs.StringVar(&localRepo, "local-repo", "local-repo", "local repository root")
	fs.IntVar(&timeoutSec, "timeout", 300, "deploy timeout in seconds")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if reportPath == "" || repoURL == "" {
		fmt.Fprintln(os.Stderr, "deploy requires --report and --repo-url")
		return 1
	}

	rec, err := loadRecord(reportPath, buildDir, project, number, toolchainVersion)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load report: %v\n", err)
		return 1
	}

	opts := toolchain.Options{
		LocalRepoPath: localRepo,
		Username:      username,
		Password:      password,
	}
	if signingKey != "" {
		signer, err := toolchain.NewSignerFromFile(signingKey, signingPassphrase)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load signing key: %v\n", err)
			return 1
		}
		opts.Signer = signer
	}
	tc := toolchain.New(opts)
	if repoID == "" {
		repoID = repoURL
	}
	repo := toolchain.NewRemoteRepo(repoID, repoURL, uniqueVersions)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()
	if err := rec.Deploy(ctx, tc, repo, buildlog.NewWriter(os.Stdout)); err != nil {
		fmt.Fprintf(os.Stderr, "deploy: %v\n", err)
		return 1
	}
	return 0
}
