package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/natpasukit/jenkins/internal/domain"
)

type FingerprintRepository struct {
	db *gorm.DB
}

func NewFingerprintRepository(db *gorm.DB) *FingerprintRepository {
	return &FingerprintRepository{db: db}
}

// Save stores one fingerprint. Recording the same build and file name twice
// is a no-op; the first digest wins.
func (r *FingerprintRepository) Save(ctx context.Context, fp domain.Fingerprint) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := FingerprintModel{
		Project:    fp.Project,
		Number:     fp.Number,
		Name:       fp.Name,
		SHA256:     fp.SHA256,
		MD5:        fp.MD5,
		SizeBytes:  fp.SizeBytes,
		RecordedAt: fp.RecordedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicate(err) {
			return nil
		}
		return err
	}
	return nil
}

// ListByBuild returns a build's fingerprints in recording order.
func (r *FingerprintRepository) ListByBuild(ctx context.Context, project string, number int64) ([]domain.Fingerprint, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []FingerprintModel
	err := r.db.WithContext(ctx).
		Where("project = ? AND number = ?", project, number).
		Order("id asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Fingerprint, 0, len(models))
	for _, m := range models {
		out = append(out, domain.Fingerprint{
			Project:    m.Project,
			Number:     m.Number,
			Name:       m.Name,
			SHA256:     m.SHA256,
			MD5:        m.MD5,
			SizeBytes:  m.SizeBytes,
			RecordedAt: m.RecordedAt,
		})
	}
	return out, nil
}
