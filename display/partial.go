package display

import (
	"image"
	"time"
)

// RefreshPolicy decides when a requested partial refresh must be promoted
// to a full refresh. Partial refreshes accumulate ghosting on e-paper, so
// a full refresh is forced after a run of partials and at least once a
// day regardless.
type RefreshPolicy struct {
	MaxPartials int
	FullEvery   time.Duration

	partialsSinceFull int
	lastFull          time.Time
	now               func() time.Time
}

func NewRefreshPolicy(maxPartials int, fullEvery time.Duration) *RefreshPolicy {
	return &RefreshPolicy{
		MaxPartials: maxPartials,
		FullEvery:   fullEvery,
		now:         time.Now,
	}
}

// ShouldFull reports whether this refresh must be full. wantPartial is
// the caller's request; hasPrev is whether a previous frame exists to
// diff against.
func (p *RefreshPolicy) ShouldFull(wantPartial, hasPrev bool) bool {
	if !wantPartial || !hasPrev {
		return true
	}
	if p.partialsSinceFull >= p.MaxPartials {
		return true
	}
	if p.lastFull.IsZero() || p.now().Sub(p.lastFull) >= p.FullEvery {
		return true
	}
	return false
}

// NoteRefresh records a completed refresh.
func (p *RefreshPolicy) NoteRefresh(full bool) {
	if full {
		p.partialsSinceFull = 0
		p.lastFull = p.now()
	} else {
		p.partialsSinceFull++
	}
}

// DiffRect returns the bounding rectangle of pixels that differ between
// prev and curr. ok is false when the frames are identical. Frames of
// different geometry diff as everything.
func DiffRect(prev, curr *image.Gray) (rect image.Rectangle, ok bool) {
	if prev == nil || !prev.Rect.Eq(curr.Rect) {
		return curr.Bounds(), true
	}
	minX, minY := curr.Rect.Max.X, curr.Rect.Max.Y
	maxX, maxY := curr.Rect.Min.X, curr.Rect.Min.Y
	changed := false
	for y := curr.Rect.Min.Y; y < curr.Rect.Max.Y; y++ {
		for x := curr.Rect.Min.X; x < curr.Rect.Max.X; x++ {
			if prev.GrayAt(x, y) != curr.GrayAt(x, y) {
				changed = true
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if x > maxX {
					maxX = x
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if !changed {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// AlignRect expands r so its x extent lies on byte boundaries, which the
// panel's partial window requires, clipped to bounds.
func AlignRect(r, bounds image.Rectangle) image.Rectangle {
	if r.Empty() {
		return r
	}
	x0 := r.Min.X &^ 7
	x1 := (r.Max.X + 7) &^ 7
	if x0 < bounds.Min.X {
		x0 = bounds.Min.X
	}
	if x1 > bounds.Max.X {
		x1 = bounds.Max.X
	}
	if x1 <= x0 {
		return bounds
	}
	return image.Rect(x0, r.Min.Y, x1, r.Max.Y).Intersect(bounds)
}
