package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
		delta                  float64
	}{
		{
			name: "given identical coordinates should return zero",
			lat1: -6.2, lon1: 106.816666,
			lat2: -6.2, lon2: 106.816666,
			expected: 0,
			delta:    0.000001,
		},
		{
			name: "given jakarta to bandung should return around 118km",
			lat1: -6.2, lon1: 106.816666,
			lat2: -6.914744, lon2: 107.609810,
			expected: 118.3,
			delta:    1.5,
		},
		{
			name: "given jakarta to surabaya should return around 668km",
			lat1: -6.2, lon1: 106.816666,
			lat2: -7.250445, lon2: 112.768845,
			expected: 667.6,
			delta:    5,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := DistanceKm(test.lat1, test.lon1, test.lat2, test.lon2)
			assert.InDelta(t, test.expected, actual, test.delta)
		})
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	forward := DistanceKm(-6.2, 106.816666, -6.914744, 107.609810)
	backward := DistanceKm(-6.914744, 107.609810, -6.2, 106.816666)

	assert.InDelta(t, forward, backward, 0.000001)
}
