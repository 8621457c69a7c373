package service

import (
	"strconv"
	"strings"

	"recipebox/internal/errors"
)

// ParseIDList parses a comma-separated id list such as "3,7,12" into ids.
// An empty string means no filter. Any non-integer entry is a client error,
// not a crash.
func ParseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, errors.ErrInvalidFilter
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
