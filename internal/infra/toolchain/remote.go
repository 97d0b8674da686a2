package toolchain

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// uploader writes one repository entry per call: the file itself, then
// .sha1 and .md5 checksum sidecars, then a detached .asc signature when a
// signer is configured. Repository URLs without a scheme, or with file://,
// address a directory on disk.
type uploader struct {
	httpDo   func(*http.Request) (*http.Response, error)
	username string
	password string
	signer   *Signer
	observe  func(int64)
}

func (u *uploader) putFile(ctx context.Context, repoURL, rel, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	if err := u.put(ctx, repoURL, rel, data); err != nil {
		return err
	}
	sha1Sum, md5Sum := checksums(data)
	if err := u.put(ctx, repoURL, rel+".sha1", []byte(sha1Sum)); err != nil {
		return err
	}
	if err := u.put(ctx, repoURL, rel+".md5", []byte(md5Sum)); err != nil {
		return err
	}
	if u.signer != nil {
		sig, err := u.signer.Sign(data)
		if err != nil {
			return err
		}
		if err := u.put(ctx, repoURL, rel+".asc", sig); err != nil {
			return err
		}
	}
	return nil
}

func (u *uploader) put(ctx context.Context, repoURL, rel string, data []byte) error {
	if dir, ok := directoryTarget(repoURL); ok {
		dst := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("deploy %s: %w", rel, err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("deploy %s: %w", rel, err)
		}
		u.observed(len(data))
		return nil
	}

	target := strings.TrimRight(repoURL, "/") + "/" + rel
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if u.username != "" {
		req.SetBasicAuth(u.username, u.password)
	}
	do := u.httpDo
	if do == nil {
		do = http.DefaultClient.Do
	}
	resp, err := do(req)
	if err != nil {
		return fmt.Errorf("deploy %s: %w", rel, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("deploy %s: status %d body %s", rel, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	u.observed(len(data))
	return nil
}

func (u *uploader) observed(n int) {
	if u.observe != nil {
		u.observe(int64(n))
	}
}

func directoryTarget(repoURL string) (string, bool) {
	if strings.HasPrefix(repoURL, "file://") {
		return strings.TrimPrefix(repoURL, "file://"), true
	}
	if !strings.Contains(repoURL, "://") {
		return repoURL, true
	}
	return "", false
}

func checksums(data []byte) (sha1Hex, md5Hex string) {
	s := sha1.Sum(data)
	m := md5.Sum(data)
	return hex.EncodeToString(s[:]), hex.EncodeToString(m[:])
}
