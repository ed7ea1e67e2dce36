package usecase

import (
	"fmt"
	"strings"

	"github.com/joanmiespada/backender/internal/core/domain"
)

// validateExternalID checks the identity-provider reference supplied by the
// caller. Authenticity is the caller's concern; the core only rejects blanks.
func validateExternalID(externalID string) error {
	if strings.TrimSpace(externalID) == "" {
		return newValidationError("external_id", "must not be empty")
	}
	return nil
}

// validateRoleName trims and checks a role name, returning the canonical form.
func validateRoleName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", newValidationError("name", "must not be empty")
	}
	return trimmed, nil
}

// validatePageRequest rejects out-of-range pagination inputs instead of
// clamping them, so caller bugs surface immediately.
func validatePageRequest(page domain.PageRequest) error {
	if page.Page < 1 {
		return newValidationError("page", "must be at least 1")
	}
	if page.PageSize < 1 {
		return newValidationError("page_size", "must be at least 1")
	}
	if page.PageSize > domain.MaxPageSize {
		return newValidationError("page_size", fmt.Sprintf("must not exceed %d", domain.MaxPageSize))
	}
	return nil
}

func validateID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return newValidationError(field, "must not be empty")
	}
	return nil
}
