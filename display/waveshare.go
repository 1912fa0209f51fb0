package display

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"reflect"
	"unsafe"

	"github.com/inkdash/inkdash/utils"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/devices/v3/waveshare2in13v4"
	"periph.io/x/host/v3"
)

// Waveshare drives the Waveshare 2.13" V4 e-paper HAT over SPI. Frames
// are rendered in display (landscape) orientation and rotated back to the
// panel's native portrait scan order on the way out.
type Waveshare struct {
	port     spi.PortCloser
	dev      *waveshare2in13v4.Dev
	rotation int
	policy   *RefreshPolicy
	prev     *image.Gray
	sleeping bool
}

// NewWaveshare initializes periph.io, opens the default SPI port and
// connects to the panel. rotation is the frame-to-panel rotation in
// degrees, matching the touch transform rotation.
func NewWaveshare(rotation int, policy *RefreshPolicy) (*Waveshare, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	port, err := spireg.Open("")
	if err != nil {
		return nil, err
	}
	opts := waveshare2in13v4.EPD2in13v4
	dev, err := waveshare2in13v4.NewHat(port, &opts)
	if err != nil {
		port.Close()
		return nil, err
	}
	return &Waveshare{
		port:     port,
		dev:      dev,
		rotation: rotation,
		policy:   policy,
	}, nil
}

func (w *Waveshare) Init() error {
	if err := w.dev.Init(); err != nil {
		return err
	}
	w.sleeping = false
	return w.dev.Clear(color.White)
}

// Render pushes the frame to the panel and puts it back to sleep.
func (w *Waveshare) Render(frame *image.Gray, partial bool) error {
	if w.sleeping {
		if err := w.dev.Init(); err != nil {
			return err
		}
		w.sleeping = false
	}

	native := rotateToPanel(frame, w.rotation)

	full := w.policy.ShouldFull(partial, w.prev != nil)
	drawRect := w.dev.Bounds()
	if !full {
		diff, changed := DiffRect(w.prev, native)
		if !changed {
			// nothing moved, skip the refresh entirely
			w.prev = native
			return w.sleep()
		}
		drawRect = AlignRect(diff, w.dev.Bounds())
	}

	if err := setPanelMode(w.dev, !full); err != nil {
		utils.Verbose("display: cannot switch refresh mode: %v", err)
		full = true
		drawRect = w.dev.Bounds()
	}

	img := image1bit.NewVerticalLSB(w.dev.Bounds())
	draw.Draw(img, img.Bounds(), native, image.Point{}, draw.Src)
	if err := w.dev.Draw(drawRect, img, image.Point{}); err != nil {
		return err
	}

	w.policy.NoteRefresh(full)
	w.prev = native
	return w.sleep()
}

func (w *Waveshare) Clear() error {
	if w.sleeping {
		if err := w.dev.Init(); err != nil {
			return err
		}
		w.sleeping = false
	}
	w.prev = nil
	return w.dev.Clear(color.White)
}

func (w *Waveshare) Sleep() error {
	return w.sleep()
}

func (w *Waveshare) Close() error {
	_ = w.sleep()
	return w.port.Close()
}

func (w *Waveshare) sleep() error {
	if w.sleeping {
		return nil
	}
	if err := w.dev.Sleep(); err != nil {
		return err
	}
	w.sleeping = true
	return nil
}

// setPanelMode flips the driver between full and partial LUTs. The
// periph.io driver keeps its mode field private, so this pokes it the
// same way the field is laid out upstream.
func setPanelMode(dev *waveshare2in13v4.Dev, partial bool) error {
	v := reflect.ValueOf(dev).Elem().FieldByName("mode")
	if !v.IsValid() || !v.CanAddr() {
		return errors.New("display mode field unavailable")
	}
	ptr := reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	if partial {
		ptr.Set(reflect.ValueOf(waveshare2in13v4.Partial))
	} else {
		ptr.Set(reflect.ValueOf(waveshare2in13v4.Full))
	}
	return nil
}

// rotateToPanel converts a landscape frame to the panel's portrait scan
// order.
func rotateToPanel(src *image.Gray, rotation int) *image.Gray {
	w := src.Rect.Dx()
	h := src.Rect.Dy()
	switch rotation {
	case 90:
		dst := image.NewGray(image.Rect(0, 0, h, w))
		for y := 0; y < w; y++ {
			for x := 0; x < h; x++ {
				dst.SetGray(x, y, src.GrayAt(y, h-1-x))
			}
		}
		return dst
	case 180:
		dst := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.SetGray(x, y, src.GrayAt(w-1-x, h-1-y))
			}
		}
		return dst
	case 270:
		dst := image.NewGray(image.Rect(0, 0, h, w))
		for y := 0; y < w; y++ {
			for x := 0; x < h; x++ {
				dst.SetGray(x, y, src.GrayAt(w-1-y, x))
			}
		}
		return dst
	default:
		out := image.NewGray(src.Rect)
		copy(out.Pix, src.Pix)
		return out
	}
}
