package touch

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// GT1151 register map (16-bit addresses, big endian on the wire).
const (
	gt1151Addr      = 0x14
	gt1151RegStatus = 0x814E
	gt1151RegPoint  = 0x814F
	gt1151RegProdID = 0x8140

	gt1151StatusReady = 0x80
	gt1151PointSize   = 8
)

// GT1151 reads the Goodix GT1151 capacitive touch controller found on the
// Waveshare 2.13" V4 touch HAT. Only the first reported point is used;
// the panel is driven as a single-touch device.
type GT1151 struct {
	bus    i2c.BusCloser
	dev    *i2c.Dev
	width  int
	height int
}

// NewGT1151 opens the controller on the named I2C bus. Width and height
// are the sensor dimensions in native portrait orientation.
func NewGT1151(busName string, width, height int) (*GT1151, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open i2c bus %q: %w", busName, err)
	}
	g := &GT1151{
		bus:    bus,
		dev:    &i2c.Dev{Bus: bus, Addr: gt1151Addr},
		width:  width,
		height: height,
	}
	if _, err := g.read(gt1151RegProdID, 4); err != nil {
		bus.Close()
		return nil, fmt.Errorf("gt1151 not responding at 0x%02x: %w", gt1151Addr, err)
	}
	return g, nil
}

func (g *GT1151) Size() (int, int) {
	return g.width, g.height
}

// Poll reads the controller status register and, when a coordinate frame
// is ready, the first touch point. The status register is cleared to
// acknowledge the frame.
func (g *GT1151) Poll() (Sample, error) {
	status, err := g.read(gt1151RegStatus, 1)
	if err != nil {
		return Sample{}, err
	}
	if status[0]&gt1151StatusReady == 0 {
		return Sample{}, nil
	}

	count := int(status[0] & 0x0F)
	if count < 1 || count > 5 {
		// buffer ready but no valid points: finger lifted
		_ = g.write(gt1151RegStatus, 0x00)
		return Sample{}, nil
	}

	data, err := g.read(gt1151RegPoint, count*gt1151PointSize)
	if err != nil {
		return Sample{}, err
	}
	_ = g.write(gt1151RegStatus, 0x00)

	x := int(data[1]) | int(data[2])<<8
	y := int(data[3]) | int(data[4])<<8
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		// controller glitch, drop the frame
		return Sample{}, nil
	}
	return Sample{Active: true, X: x, Y: y}, nil
}

func (g *GT1151) Close() error {
	return g.bus.Close()
}

func (g *GT1151) read(reg uint16, n int) ([]byte, error) {
	w := []byte{byte(reg >> 8), byte(reg & 0xFF)}
	r := make([]byte, n)
	if err := g.dev.Tx(w, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (g *GT1151) write(reg uint16, b byte) error {
	return g.dev.Tx([]byte{byte(reg >> 8), byte(reg & 0xFF), b}, nil)
}
