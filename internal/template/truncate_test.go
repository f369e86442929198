package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxWidth int
		want     string
	}{
		{
			name:     "shorter",
			s:        "Fast tool",
			maxWidth: 10,
			want:     "Fast tool",
		},
		{
			name:     "exact",
			s:        "exact",
			maxWidth: 5,
			want:     "exact",
		},
		{
			name:     "too long",
			s:        "too long",
			maxWidth: 5,
			want:     "to...",
		},
		{
			name:     "too narrow for ellipsis",
			s:        "too long",
			maxWidth: 4,
			want:     "too ",
		},
		{
			name:     "folds lines",
			s:        "first line\nsecond\tline",
			maxWidth: 30,
			want:     "first line second line",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.maxWidth, tt.s)
			assert.Equal(t, tt.want, got)
		})
	}
}
