package shared

import (
	"strings"

	"github.com/google/uuid"
)

// ParseOptionalID parses an optional identifier; blank input yields nil
func ParseOptionalID(raw, field string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, NewValidationError("invalid %s", field)
	}
	return &id, nil
}
