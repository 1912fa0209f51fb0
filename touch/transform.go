package touch

// Transformer maps sensor-space coordinates into display-space
// coordinates. The panel's touch matrix is mounted in its native portrait
// orientation while the display is read out rotated, so this is a fixed
// linear transform, not a calibration.
type Transformer struct {
	rotation     int
	sensorWidth  int // narrow axis
	sensorHeight int // long axis
}

// NewTransformer creates a transformer for the given rotation in degrees.
// Rotation values other than 0, 90, 180 and 270 behave as identity;
// config validation warns about them at startup.
func NewTransformer(rotation, sensorWidth, sensorHeight int) Transformer {
	return Transformer{
		rotation:     rotation,
		sensorWidth:  sensorWidth,
		sensorHeight: sensorHeight,
	}
}

// Apply transforms a raw sensor coordinate into display space.
func (t Transformer) Apply(x, y int) (int, int) {
	switch t.rotation {
	case 90:
		return t.sensorHeight - y, x
	case 180:
		return t.sensorHeight - y, t.sensorWidth - x
	case 270:
		return y, t.sensorWidth - x
	default:
		return x, y
	}
}
