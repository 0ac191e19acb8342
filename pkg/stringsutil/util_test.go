package stringsutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveEmptyStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, RemoveEmptyStrings([]string{"", "a", "", "b"}))
	assert.Nil(t, RemoveEmptyStrings([]string{""}))
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"shorter", "abc", 5, "abc"},
		{"exact", "abc", 3, "abc"},
		{"cut", "abc", 2, "ab"},
		{"multibyte", strings.Repeat("ü", 6), 3, strings.Repeat("ü", 3)},
		{"no limit", "abc", 0, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateRunes(tt.in, tt.limit))
		})
	}
}
