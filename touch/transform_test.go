package touch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sensor is portrait 122x250, display landscape 250x122
const (
	testSensorW = 122
	testSensorH = 250
)

func TestTransformerRotations(t *testing.T) {
	tests := []struct {
		name     string
		rotation int
		x, y     int
		wantX    int
		wantY    int
	}{
		{"identity origin", 0, 0, 0, 0, 0},
		{"identity point", 0, 17, 42, 17, 42},
		{"rot90 origin", 90, 0, 0, testSensorH, 0},
		{"rot90 point", 90, 10, 40, testSensorH - 40, 10},
		{"rot180 point", 180, 10, 40, testSensorH - 40, testSensorW - 10},
		{"rot270 origin", 270, 0, 0, 0, testSensorW},
		{"rot270 point", 270, 10, 40, 40, testSensorW - 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTransformer(tt.rotation, testSensorW, testSensorH)
			gotX, gotY := tr.Apply(tt.x, tt.y)
			assert.Equal(t, tt.wantX, gotX)
			assert.Equal(t, tt.wantY, gotY)
		})
	}
}

func TestTransformerUnknownRotationIsIdentity(t *testing.T) {
	for _, rotation := range []int{45, -90, 360, 1} {
		tr := NewTransformer(rotation, testSensorW, testSensorH)
		x, y := tr.Apply(33, 77)
		assert.Equal(t, 33, x, "rotation %d", rotation)
		assert.Equal(t, 77, y, "rotation %d", rotation)
	}
}

// A 90 degree transform followed by a 270 degree transform with swapped
// sensor axes must return every in-bounds point unchanged.
func TestTransformerRoundTrip(t *testing.T) {
	forward := NewTransformer(90, testSensorW, testSensorH)
	inverse := NewTransformer(270, testSensorH, testSensorW)

	for x := 0; x < testSensorW; x += 11 {
		for y := 0; y < testSensorH; y += 13 {
			t.Run(fmt.Sprintf("%d_%d", x, y), func(t *testing.T) {
				mx, my := forward.Apply(x, y)
				rx, ry := inverse.Apply(mx, my)
				assert.Equal(t, x, rx)
				assert.Equal(t, y, ry)
			})
		}
	}
}
