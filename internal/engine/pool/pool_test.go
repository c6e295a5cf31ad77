package pool

import (
	"testing"

	"github.com/emberfall/caster/pkg/math"
)

func newTestPool() *Pool {
	return New([]Kind{Scalar, Vec2, Vec3, Vec4, Mat4})
}

func TestAllocFreeReuse(t *testing.T) {
	p := newTestPool()

	a := p.Alloc()
	b := p.Alloc()
	if a == b {
		t.Fatal("distinct allocations should return distinct handles")
	}
	if p.Len() != 2 {
		t.Errorf("Len: got %d, want 2", p.Len())
	}

	p.Free(a)
	if p.Len() != 1 {
		t.Errorf("Len after free: got %d, want 1", p.Len())
	}

	c := p.Alloc()
	if c != a {
		t.Errorf("freed slot should be reused: got %d, want %d", c, a)
	}
}

func TestFreeNilIsNoop(t *testing.T) {
	p := newTestPool()
	p.Free(Nil)

	h := p.Alloc()
	p.Free(h)
	p.Free(h) // second free of the same handle must not corrupt the free list
	if got := p.Alloc(); got != h {
		t.Errorf("reuse after double free: got %d, want %d", got, h)
	}
	if p.Len() != 1 {
		t.Errorf("Len: got %d, want 1", p.Len())
	}
}

func TestReusedSlotIsZeroed(t *testing.T) {
	p := newTestPool()
	h := p.Alloc()
	p.SetScalar(h, 0, 42)
	p.SetVec3(h, 2, math.Vec3{X: 1, Y: 2, Z: 3})
	p.Free(h)

	h = p.Alloc()
	if v := p.Scalar(h, 0); v != 0 {
		t.Errorf("scalar in recycled slot: got %f, want 0", v)
	}
	if v := p.Vec3(h, 2); v != (math.Vec3{}) {
		t.Errorf("vec3 in recycled slot: got %v, want zero", v)
	}
}

func TestWriteThroughPerKind(t *testing.T) {
	p := newTestPool()
	h := p.Alloc()

	p.SetScalar(h, 0, 1.5)
	if got := p.Scalar(h, 0); got != 1.5 {
		t.Errorf("scalar: got %f, want 1.5", got)
	}

	v2 := math.Vec2{X: 512, Y: 256}
	p.SetVec2(h, 1, v2)
	if got := p.Vec2(h, 1); got != v2 {
		t.Errorf("vec2: got %v, want %v", got, v2)
	}

	v3 := math.Vec3{X: 0, Y: 1, Z: 0}
	p.SetVec3(h, 2, v3)
	if got := p.Vec3(h, 2); got != v3 {
		t.Errorf("vec3: got %v, want %v", got, v3)
	}

	v4 := math.Vec4{X: 0.1, Y: 0.2, Z: 0.3, W: 0.4}
	p.SetVec4(h, 3, v4)
	if got := p.Vec4(h, 3); got != v4 {
		t.Errorf("vec4: got %v, want %v", got, v4)
	}

	m := math.Ortho(-1, 1, -1, 1, 0.1, 10)
	p.SetMat4(h, 4, m)
	if got := p.Mat4(h, 4); got != m {
		t.Errorf("mat4: got %v, want %v", got, m)
	}
}

func TestNeighborRecordsDoNotAlias(t *testing.T) {
	p := newTestPool()
	a := p.Alloc()
	b := p.Alloc()

	p.SetVec3(a, 2, math.Vec3{X: 1, Y: 1, Z: 1})
	p.SetVec3(b, 2, math.Vec3{X: 9, Y: 9, Z: 9})

	if got := p.Vec3(a, 2); got != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("record a clobbered by neighbor write: %v", got)
	}
}

func TestDeadHandleAccessPanics(t *testing.T) {
	p := newTestPool()
	h := p.Alloc()
	p.Free(h)

	defer func() {
		if recover() == nil {
			t.Error("reading a freed handle should panic")
		}
	}()
	p.Scalar(h, 0)
}

func TestKindMismatchPanics(t *testing.T) {
	p := newTestPool()
	h := p.Alloc()

	defer func() {
		if recover() == nil {
			t.Error("kind mismatch should panic")
		}
	}()
	p.Vec3(h, 0)
}
