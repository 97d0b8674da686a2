package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/natpasukit/jenkins/internal/domain"
)

type RecordRepository struct {
	db            *gorm.DB
	artifactsRoot string
}

// NewRecordRepository stores artifact records. Builds reference their files
// relative to artifactsRoot, so loads rebuild the artifact directory from it.
func NewRecordRepository(db *gorm.DB, artifactsRoot string) *RecordRepository {
	return &RecordRepository{db: db, artifactsRoot: artifactsRoot}
}

func (r *RecordRepository) Save(ctx context.Context, rec *domain.ArtifactRecord) (string, error) {
	if r.db == nil {
		return "", errDBUnavailable
	}
	model, err := recordModelFromDomain(rec)
	if err != nil {
		return "", err
	}
	model.ID = uuid.NewString()
	model.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicate(err) {
			return "", domain.ErrRecordExists
		}
		return "", err
	}
	return model.ID, nil
}

func (r *RecordRepository) FindByBuild(ctx context.Context, project string, number int64) (*domain.ArtifactRecord, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model RecordModel
	err := r.db.WithContext(ctx).First(&model, "project = ? AND number = ?", project, number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return recordFromModel(model, r.artifactsRoot)
}

func recordModelFromDomain(rec *domain.ArtifactRecord) (RecordModel, error) {
	descriptorJSON, err := json.Marshal(rec.Descriptor())
	if err != nil {
		return RecordModel{}, fmt.Errorf("encode descriptor: %w", err)
	}
	mainJSON, err := json.Marshal(rec.Main())
	if err != nil {
		return RecordModel{}, fmt.Errorf("encode main artifact: %w", err)
	}
	attachedJSON, err := json.Marshal(rec.Attached())
	if err != nil {
		return RecordModel{}, fmt.Errorf("encode attached artifacts: %w", err)
	}
	build := rec.Build()
	return RecordModel{
		Project:          build.Project,
		Number:           build.Number,
		ToolchainVersion: build.ToolchainVersion,
		DescriptorJSON:   descriptorJSON,
		MainJSON:         mainJSON,
		AttachedJSON:     attachedJSON,
		DescriptorOnly:   rec.DescriptorOnly(),
	}, nil
}

func recordFromModel(model RecordModel, artifactsRoot string) (*domain.ArtifactRecord, error) {
	var descriptor, main domain.Artifact
	var attached []domain.Artifact
	if err := json.Unmarshal(model.DescriptorJSON, &descriptor); err != nil {
		return nil, fmt.Errorf("decode descriptor: %w", err)
	}
	if err := json.Unmarshal(model.MainJSON, &main); err != nil {
		return nil, fmt.Errorf("decode main artifact: %w", err)
	}
	if err := json.Unmarshal(model.AttachedJSON, &attached); err != nil {
		return nil, fmt.Errorf("decode attached artifacts: %w", err)
	}
	build := domain.NewBuild(artifactsRoot, model.Project, model.Number, model.ToolchainVersion)
	return domain.NewArtifactRecord(build, descriptor, &main, attached)
}
