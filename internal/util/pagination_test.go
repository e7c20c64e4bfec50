package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, size      int
		wantFrom, wantN int
	}{
		{page: 1, size: 10, wantFrom: 0, wantN: 10},
		{page: 3, size: 20, wantFrom: 40, wantN: 20},
		{page: 0, size: 5, wantFrom: 0, wantN: 5},
		{page: 2, size: 0, wantFrom: 10, wantN: DefaultPageSize},
		{page: 2, size: MaxPageSize + 1, wantFrom: 10, wantN: DefaultPageSize},
	}

	for _, tt := range tests {
		from, n := Calculate(tt.page, tt.size)
		assert.Equal(t, tt.wantFrom, from)
		assert.Equal(t, tt.wantN, n)
	}
}

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("x", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}
