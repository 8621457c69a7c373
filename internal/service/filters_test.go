package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipebox/internal/errors"
)

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      []uint
		expectedError error
	}{
		{name: "empty means no filter", input: "", expected: nil},
		{name: "single id", input: "7", expected: []uint{7}},
		{name: "multiple ids", input: "10,2", expected: []uint{10, 2}},
		{name: "whitespace tolerated", input: " 1 , 2 ", expected: []uint{1, 2}},
		{name: "non-integer", input: "1,abc", expectedError: errors.ErrInvalidFilter},
		{name: "negative", input: "-1", expectedError: errors.ErrInvalidFilter},
		{name: "trailing comma", input: "1,", expectedError: errors.ErrInvalidFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := ParseIDList(tt.input)
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, ids)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, ids)
			}
		})
	}
}
