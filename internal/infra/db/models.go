package db

import "time"

type RecordModel struct {
	ID               string    `gorm:"type:uuid;primaryKey"`
	Project          string    `gorm:"uniqueIndex:idx_artifact_records_build;not null"`
	Number           int64     `gorm:"uniqueIndex:idx_artifact_records_build;not null"`
	ToolchainVersion string    `gorm:"not null"`
	DescriptorJSON   []byte    `gorm:"type:jsonb;not null"`
	MainJSON         []byte    `gorm:"type:jsonb;not null"`
	AttachedJSON     []byte    `gorm:"type:jsonb;not null"`
	DescriptorOnly   bool      `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null"`
}

func (RecordModel) TableName() string { return "artifact_records" }

type FingerprintModel struct {
	ID         int64     `gorm:"primaryKey"`
	Project    string    `gorm:"uniqueIndex:idx_artifact_fingerprints_key;not null"`
	Number     int64     `gorm:"uniqueIndex:idx_artifact_fingerprints_key;not null"`
	Name       string    `gorm:"uniqueIndex:idx_artifact_fingerprints_key;not null"`
	SHA256     string    `gorm:"column:sha256;not null"`
	MD5        string    `gorm:"column:md5;not null"`
	SizeBytes  int64     `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null"`
}

func (FingerprintModel) TableName() string { return "artifact_fingerprints" }
