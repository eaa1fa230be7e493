package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       OffsetRequest
		total     int
		wantStart int
		wantEnd   int
		wantMore  bool
	}{
		{name: "defaults", req: OffsetRequest{}, total: 50, wantStart: 0, wantEnd: 20, wantMore: true},
		{name: "last page", req: OffsetRequest{Page: 3, Size: 20}, total: 50, wantStart: 40, wantEnd: 50},
		{name: "past the end", req: OffsetRequest{Page: 9, Size: 10}, total: 15, wantStart: 15, wantEnd: 15},
		{name: "clamped size", req: OffsetRequest{Page: 1, Size: 1000}, total: 150, wantStart: 0, wantEnd: 100, wantMore: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Normalize()
			start, end := req.Bounds(tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)

			res := NewOffsetResult([]int{}, tt.total, req)
			assert.Equal(t, tt.wantMore, res.HasMore)
		})
	}
}
