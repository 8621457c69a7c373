package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Thai prawn curry", "thai-prawn-curry"},
		{"slow_burn", "slow-burn"},
		{"SLOW-BURN", "slow-burn"},
		{"  multi   word ", "multi-word"},
		{"--leading--", "leading"},
		{"Crème brûlée!", "crme-brle"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}
