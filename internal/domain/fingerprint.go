package domain

import (
	"context"
	"time"
)

// Fingerprinter hashes an artifact file and persists the result keyed by
// build and file name, for build-to-build traceability.
type Fingerprinter interface {
	Record(ctx context.Context, build *Build, name, file string) error
}

// Fingerprint is one stored artifact digest.
type Fingerprint struct {
	Project    string    `json:"project"`
	Number     int64     `json:"number"`
	Name       string    `json:"name"`
	SHA256     string    `json:"sha256"`
	MD5        string    `json:"md5"`
	SizeBytes  int64     `json:"size_bytes"`
	RecordedAt time.Time `json:"recorded_at"`
}
