package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/natpasukit/jenkins/internal/domain"
)

var errDBUnavailable = fmt.Errorf("%w: database not configured", domain.ErrCapabilityUnavailable)

// isDuplicate also matches on message because not every driver translates
// unique-constraint violations to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
