package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		in         OffsetRequest
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults", OffsetRequest{}, 1, PageDefaultSize, 0},
		{"negative", OffsetRequest{Page: -2, Size: -1}, 1, PageDefaultSize, 0},
		{"capped", OffsetRequest{Page: 2, Size: PageMaxSize + 1}, 2, PageMaxSize, PageMaxSize},
		{"third page", OffsetRequest{Page: 3, Size: 10}, 3, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.in
			r.Validate()
			assert.Equal(t, tt.wantPage, r.Page)
			assert.Equal(t, tt.wantSize, r.Size)
			assert.Equal(t, tt.wantOffset, r.Offset())
		})
	}
}

func TestNewOffsetResult(t *testing.T) {
	res := NewOffsetResult([]int{1, 2}, 5, 1, 2)
	assert.True(t, res.HasMore)

	res = NewOffsetResult[int](nil, 4, 2, 2)
	assert.False(t, res.HasMore)
	assert.NotNil(t, res.Items)
}
