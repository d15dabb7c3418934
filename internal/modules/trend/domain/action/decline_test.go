package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDeclining(t *testing.T) {
	cases := []struct {
		name   string
		points []float64
		want   bool
	}{
		{"empty", nil, false},
		{"one point", []float64{5}, false},
		{"two points", []float64{5, 4}, false},
		{"strict drop", []float64{10, 8, 6}, true},
		{"tie breaks monotonicity", []float64{10, 8, 8}, false},
		{"increasing", []float64{6, 8, 10}, false},
		{"only trailing triple counts", []float64{1, 2, 9, 7, 3}, true},
		{"earlier drop then recovery", []float64{10, 8, 6, 7}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDeclining(tc.points))
		})
	}
}
