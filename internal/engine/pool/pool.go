// Package pool provides a structure-of-arrays record arena addressed by
// opaque handles. Records are packed per-field float32 columns so that
// GPU-facing code can read settings without pointer chasing; facade types
// hold a Handle and go through the typed accessors.
package pool

import "github.com/emberfall/caster/pkg/math"

// Handle identifies a record inside a Pool. It is an index, not an address.
type Handle int32

// Nil is the null handle sentinel. It never identifies a live record.
const Nil Handle = -1

// Kind describes the type of a record field.
type Kind int

// Field kinds. The stride is the number of float32 slots a field occupies.
const (
	Scalar Kind = iota
	Vec2
	Vec3
	Vec4
	Mat4
)

// Stride returns the float32 slot count for the kind.
func (k Kind) Stride() int {
	switch k {
	case Scalar:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4:
		return 4
	case Mat4:
		return 16
	default:
		panic("pool: undefined field kind")
	}
}

// FieldID indexes a field within a Pool's schema.
type FieldID int

// Pool is a fixed-schema record arena. One column per field, one slot
// group per record. A freed slot is recycled by the next Alloc.
//
// The pool performs no locking; callers serialize writes externally.
type Pool struct {
	kinds []Kind
	cols  [][]float32
	live  []bool
	freed []Handle
}

// New creates a pool whose records have one field per entry of kinds,
// addressed by FieldID in declaration order.
func New(kinds []Kind) *Pool {
	p := &Pool{
		kinds: kinds,
		cols:  make([][]float32, len(kinds)),
	}
	return p
}

// Alloc reserves a record slot and returns its handle. The slot's fields
// are zeroed. Alloc grows the columns as needed and never fails.
func (p *Pool) Alloc() Handle {
	if n := len(p.freed); n > 0 {
		h := p.freed[n-1]
		p.freed = p.freed[:n-1]
		p.live[h] = true
		p.zero(h)
		return h
	}
	h := Handle(len(p.live))
	p.live = append(p.live, true)
	for f, k := range p.kinds {
		p.cols[f] = append(p.cols[f], make([]float32, k.Stride())...)
	}
	return h
}

// Free releases a record slot for reuse. Freeing Nil or an already-freed
// handle is a no-op.
func (p *Pool) Free(h Handle) {
	if h == Nil || int(h) >= len(p.live) || !p.live[h] {
		return
	}
	p.live[h] = false
	p.freed = append(p.freed, h)
}

// Len returns the number of live records.
func (p *Pool) Len() int {
	return len(p.live) - len(p.freed)
}

// SetScalar writes a scalar field. Booleans and enums are stored as scalars.
func (p *Pool) SetScalar(h Handle, f FieldID, v float32) {
	p.slot(h, f, Scalar)[0] = v
}

// Scalar reads a scalar field.
func (p *Pool) Scalar(h Handle, f FieldID) float32 {
	return p.slot(h, f, Scalar)[0]
}

// SetVec2 writes a Vec2 field.
func (p *Pool) SetVec2(h Handle, f FieldID, v math.Vec2) {
	s := p.slot(h, f, Vec2)
	s[0], s[1] = v.X, v.Y
}

// Vec2 reads a Vec2 field.
func (p *Pool) Vec2(h Handle, f FieldID) math.Vec2 {
	s := p.slot(h, f, Vec2)
	return math.Vec2{X: s[0], Y: s[1]}
}

// SetVec3 writes a Vec3 field.
func (p *Pool) SetVec3(h Handle, f FieldID, v math.Vec3) {
	s := p.slot(h, f, Vec3)
	s[0], s[1], s[2] = v.X, v.Y, v.Z
}

// Vec3 reads a Vec3 field.
func (p *Pool) Vec3(h Handle, f FieldID) math.Vec3 {
	s := p.slot(h, f, Vec3)
	return math.Vec3{X: s[0], Y: s[1], Z: s[2]}
}

// SetVec4 writes a Vec4 field.
func (p *Pool) SetVec4(h Handle, f FieldID, v math.Vec4) {
	s := p.slot(h, f, Vec4)
	s[0], s[1], s[2], s[3] = v.X, v.Y, v.Z, v.W
}

// Vec4 reads a Vec4 field.
func (p *Pool) Vec4(h Handle, f FieldID) math.Vec4 {
	s := p.slot(h, f, Vec4)
	return math.Vec4{X: s[0], Y: s[1], Z: s[2], W: s[3]}
}

// SetMat4 writes a Mat4 field.
func (p *Pool) SetMat4(h Handle, f FieldID, m math.Mat4) {
	copy(p.slot(h, f, Mat4), m[:])
}

// Mat4 reads a Mat4 field.
func (p *Pool) Mat4(h Handle, f FieldID) math.Mat4 {
	var m math.Mat4
	copy(m[:], p.slot(h, f, Mat4))
	return m
}

// slot returns the float32 slots of field f in record h.
// Handle and kind mismatches are programmer errors.
func (p *Pool) slot(h Handle, f FieldID, k Kind) []float32 {
	if h == Nil || int(h) >= len(p.live) || !p.live[h] {
		panic("pool: access through dead handle")
	}
	if p.kinds[f] != k {
		panic("pool: field kind mismatch")
	}
	stride := k.Stride()
	off := int(h) * stride
	return p.cols[f][off : off+stride]
}

func (p *Pool) zero(h Handle) {
	for f, k := range p.kinds {
		stride := k.Stride()
		off := int(h) * stride
		s := p.cols[f][off : off+stride]
		for i := range s {
			s[i] = 0
		}
	}
}
