package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectHalving(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "division", text: "mid = n / 2", want: []string{"divide-by-two"}},
		{name: "divide assign", text: "n /= 2", want: []string{"divide-assign"}},
		{name: "floor divide assign", text: "n //= 2", want: []string{"divide-assign"}},
		{name: "shift", text: "i >>= 1", want: []string{"shift-right"}},
		{name: "unsigned shift", text: "mid = (lo + hi) >>> 1", want: []string{"shift-right", "midpoint"}},
		{
			name: "floor midpoint",
			text: "mid = Math.floor((lo + hi) / 2)",
			want: []string{"divide-by-two", "floor-midpoint", "midpoint"},
		},
		{name: "doubling", text: "i *= 2", want: []string{"doubling-step"}},
		{name: "shift-left doubling", text: "step <<= 1", want: []string{"doubling-step"}},
		{name: "division by twenty", text: "a / 20"},
		{name: "multiplication", text: "x = y * 2"},
		{name: "shift by ten", text: "i >> 10"},
		{name: "empty", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string
			for _, match := range DetectHalving(tt.text) {
				names = append(names, match.Name)
			}

			assert.Equal(t, tt.want, names)
			assert.Equal(t, len(tt.want) > 0, HasDivideByTwo(tt.text))
		})
	}
}

func TestDetectHalving_Descriptions(t *testing.T) {
	matches := DetectHalving("n /= 2")

	assert.Equal(t, []HalvingMatch{{Name: "divide-assign", Description: "in-place division by two"}}, matches)
}
