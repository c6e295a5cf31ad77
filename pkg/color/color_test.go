package color

import (
	"testing"

	"github.com/emberfall/caster/pkg/math"
)

func TestVec4RoundTrip(t *testing.T) {
	c := RGBA(0, 0, 0, 76)
	back := FromVec4(c.Vec4())
	if back != c {
		t.Errorf("round trip: got %v, want %v", back, c)
	}
}

func TestRGBFullAlpha(t *testing.T) {
	c := RGB(10, 20, 30)
	if c.A != 255 {
		t.Errorf("RGB alpha: got %d, want 255", c.A)
	}
}

func TestFromVec4Clamps(t *testing.T) {
	c := FromVec4(math.Vec4{X: 2.5, Y: -1, Z: 0.5, W: 1})
	if c.R != 255 || c.G != 0 {
		t.Errorf("clamp: got %v", c)
	}
}

func TestWithAlpha(t *testing.T) {
	c := RGB(1, 2, 3).WithAlpha(100)
	if c.A != 100 || c.R != 1 {
		t.Errorf("WithAlpha: got %v", c)
	}
}
