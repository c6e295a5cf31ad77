package lighting

import "testing"

func TestSunDirectionZenith(t *testing.T) {
	d := SunDirection(0, 90)
	if d.Y < 0.999 {
		t.Errorf("latitude 90 should point straight up, got %v", d)
	}
}

func TestSunDirectionHorizon(t *testing.T) {
	d := SunDirection(0, 0)
	if d.Z < 0.999 || d.Y > 0.001 {
		t.Errorf("lon 0 lat 0 should point along +Z, got %v", d)
	}

	d = SunDirection(90, 0)
	if d.X < 0.999 {
		t.Errorf("lon 90 lat 0 should point along +X, got %v", d)
	}
}

func TestSunDirectionNormalized(t *testing.T) {
	d := SunDirection(135, 45)
	if l := d.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("direction should be unit length, got %f", l)
	}
}
