package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func queryContext(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedLimit  int
		expectedOffset int
	}{
		{"defaults", "", 6, 0},
		{"second page", "p=2", 6, 6},
		{"custom page size", "p=3&ps=10", 10, 20},
		{"page size capped at 24", "ps=100", 24, 0},
		{"garbage falls back to defaults", "p=abc&ps=-4", 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := pagination(queryContext(tt.query))
			assert.Equal(t, tt.expectedLimit, limit)
			assert.Equal(t, tt.expectedOffset, offset)
		})
	}
}

func TestAssignedOnly(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		expected    bool
		expectError bool
	}{
		{"absent defaults to false", "", false, false},
		{"zero", "assign_only=0", false, false},
		{"one", "assign_only=1", true, false},
		{"non-integer is a client error", "assign_only=yes", false, true},
		{"out of range is a client error", "assign_only=2", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := assignedOnly(queryContext(tt.query))
			if tt.expectError {
				assert.Error(t, err)
				httpErr, ok := err.(*echo.HTTPError)
				assert.True(t, ok)
				assert.Equal(t, http.StatusBadRequest, httpErr.Code)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
