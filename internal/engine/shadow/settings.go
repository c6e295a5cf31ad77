// Package shadow provides the scene's shadow-configuration record.
//
// All mutable state lives in a pool record shared with native render code;
// the Settings facade owns the record's handle, exposes typed accessors and
// keeps the pool, its local mirrors and the global pipeline flag consistent
// whenever a setting changes.
package shadow

import (
	"github.com/emberfall/caster/internal/engine/geometry"
	"github.com/emberfall/caster/internal/engine/material"
	"github.com/emberfall/caster/internal/engine/pool"
	"github.com/emberfall/caster/pkg/color"
	"github.com/emberfall/caster/pkg/math"
)

// Type selects the shadow technique.
type Type int

// Shadow techniques. Integer values are stable for serialization.
const (
	TypePlanar Type = iota
	TypeShadowMap
)

// PCFType selects the percentage-closer filtering kernel of shadow-map
// shadows.
type PCFType int

// PCF kernels. Integer values are stable for serialization.
const (
	PCFHard PCFType = iota
	PCFFilterX5
	PCFFilterX9
	PCFFilterX25
)

// Record field IDs, in schema order. Native render code reads these fields
// directly from the pool.
const (
	FieldEnable pool.FieldID = iota
	FieldNormal
	FieldDistance
	FieldColor
	FieldType
	FieldNear
	FieldFar
	FieldAspect
	FieldOrthoSize
	FieldSize
	FieldPCFType
	FieldBias
	FieldAutoAdapt
	FieldPlanarPass
	FieldInstancePass
	FieldMatLightViewProj
)

// Schema is the shadow record layout for pool.New.
var Schema = []pool.Kind{
	pool.Scalar, // ENABLE
	pool.Vec3,   // NORMAL
	pool.Scalar, // DISTANCE
	pool.Vec4,   // COLOR
	pool.Scalar, // TYPE
	pool.Scalar, // NEAR
	pool.Scalar, // FAR
	pool.Scalar, // ASPECT
	pool.Scalar, // ORTHO_SIZE
	pool.Vec2,   // SIZE
	pool.Scalar, // PCF_TYPE
	pool.Scalar, // BIAS
	pool.Scalar, // AUTO_ADAPT
	pool.Scalar, // PLANAR_PASS
	pool.Scalar, // INSTANCE_PASS
	pool.Mat4,   // MAT_LIGHT_VIEW_PROJ
}

// planarEffect is the effect compiled for planar shadows; the instancing
// variant enables the USE_INSTANCING feature define.
const planarEffect = "pipeline/planar-shadow"

// MaterialFactory compiles a named effect into a material.
type MaterialFactory interface {
	Compile(effect string, defines material.Defines) (*material.Material, error)
}

// PipelineBridge is the global pipeline object the settings keep in sync.
type PipelineBridge interface {
	ReceiveShadowFlag() bool
	SetReceiveShadowFlag(bool)
	NotifyGlobalStateChanged()
}

// Settings is the scene's shadow-configuration record. One instance per
// scene. All mutation must come from a single logical owner; the record
// write-through is not atomic across fields and the facade holds no locks.
type Settings struct {
	handle  pool.Handle
	records *pool.Pool
	factory MaterialFactory
	bridge  PipelineBridge

	// Mirrors of the compound pool fields, kept byte-identical to the
	// record so reads do not rebuild value types. Scalars and enums are
	// deliberately not mirrored.
	normal      math.Vec3
	shadowColor color.Color
	size        math.Vec2
	matLightVP  math.Mat4

	mat           *material.Material
	instancingMat *material.Material

	// Scene-space bounds of shadow casters and receivers, mutated by
	// scene code and released by Destroy.
	CastBounds    *geometry.Sphere
	ReceiveBounds *geometry.Sphere
}

// New allocates a shadow record in records and returns its facade with
// default values populated.
func New(records *pool.Pool, factory MaterialFactory, bridge PipelineBridge) *Settings {
	s := &Settings{
		handle:  records.Alloc(),
		records: records,
		factory: factory,
		bridge:  bridge,

		normal:      math.UnitY,
		shadowColor: color.RGBA(0, 0, 0, 76),
		size:        math.Vec2{X: 512, Y: 512},
		matLightVP:  math.Identity(),

		CastBounds:    geometry.NewSphere(math.Vec3{}, 0),
		ReceiveBounds: geometry.NewSphere(math.Vec3{}, 0),
	}

	h := s.handle
	records.SetScalar(h, FieldEnable, 0)
	records.SetVec3(h, FieldNormal, s.normal)
	records.SetScalar(h, FieldDistance, 0)
	records.SetVec4(h, FieldColor, s.shadowColor.Vec4())
	records.SetScalar(h, FieldType, float32(TypePlanar))
	records.SetScalar(h, FieldNear, 1)
	records.SetScalar(h, FieldFar, 30)
	records.SetScalar(h, FieldAspect, 1)
	records.SetScalar(h, FieldOrthoSize, 5)
	records.SetVec2(h, FieldSize, s.size)
	records.SetScalar(h, FieldPCFType, float32(PCFHard))
	records.SetScalar(h, FieldBias, 0.00005)
	records.SetScalar(h, FieldAutoAdapt, 1)
	records.SetScalar(h, FieldPlanarPass, float32(pool.Nil))
	records.SetScalar(h, FieldInstancePass, float32(pool.Nil))
	records.SetMat4(h, FieldMatLightViewProj, s.matLightVP)

	return s
}

// Handle returns the pool handle of the record. It is pool.Nil after
// Destroy.
func (s *Settings) Handle() pool.Handle {
	return s.handle
}

// Enabled reports whether shadows are enabled.
func (s *Settings) Enabled() bool {
	return s.records.Scalar(s.handle, FieldEnable) != 0
}

// SetEnabled enables or disables shadows. Enabling activates the current
// technique, which may compile planar materials; disabling re-syncs the
// pipeline flag so the scene stops receiving shadows promptly.
func (s *Settings) SetEnabled(v bool) error {
	s.records.SetScalar(s.handle, FieldEnable, boolScalar(v))
	if v {
		return s.Activate()
	}
	s.syncPipeline()
	return nil
}

// Normal returns the planar shadow plane normal.
func (s *Settings) Normal() math.Vec3 {
	return s.normal
}

// SetNormal sets the planar shadow plane normal.
func (s *Settings) SetNormal(n math.Vec3) {
	s.normal = n
	s.records.SetVec3(s.handle, FieldNormal, n)
}

// Distance returns the shadow plane's distance along its normal.
func (s *Settings) Distance() float32 {
	return s.records.Scalar(s.handle, FieldDistance)
}

// SetDistance sets the shadow plane's distance along its normal.
func (s *Settings) SetDistance(d float32) {
	s.records.SetScalar(s.handle, FieldDistance, d)
}

// Color returns the shadow color.
func (s *Settings) Color() color.Color {
	return s.shadowColor
}

// SetColor sets the shadow color.
func (s *Settings) SetColor(c color.Color) {
	s.shadowColor = c
	s.records.SetVec4(s.handle, FieldColor, c.Vec4())
}

// ShadowType returns the active shadow technique.
func (s *Settings) ShadowType() Type {
	return Type(s.records.Scalar(s.handle, FieldType))
}

// SetType switches the shadow technique. The value is stored verbatim
// without range validation. Both the pipeline sync and the planar material
// init run regardless of the new value, so planar materials stay warm even
// while in shadow-map mode.
func (s *Settings) SetType(t Type) error {
	s.records.SetScalar(s.handle, FieldType, float32(t))
	s.syncPipeline()
	return s.initPlanarMaterials()
}

// Near returns the shadow camera near plane.
func (s *Settings) Near() float32 {
	return s.records.Scalar(s.handle, FieldNear)
}

// SetNear sets the shadow camera near plane.
func (s *Settings) SetNear(v float32) {
	s.records.SetScalar(s.handle, FieldNear, v)
}

// Far returns the shadow camera far plane.
func (s *Settings) Far() float32 {
	return s.records.Scalar(s.handle, FieldFar)
}

// SetFar sets the shadow camera far plane.
func (s *Settings) SetFar(v float32) {
	s.records.SetScalar(s.handle, FieldFar, v)
}

// Aspect returns the shadow camera aspect ratio.
func (s *Settings) Aspect() float32 {
	return s.records.Scalar(s.handle, FieldAspect)
}

// SetAspect sets the shadow camera aspect ratio.
func (s *Settings) SetAspect(v float32) {
	s.records.SetScalar(s.handle, FieldAspect, v)
}

// OrthoSize returns the orthographic half-size of the shadow camera.
func (s *Settings) OrthoSize() float32 {
	return s.records.Scalar(s.handle, FieldOrthoSize)
}

// SetOrthoSize sets the orthographic half-size of the shadow camera.
func (s *Settings) SetOrthoSize(v float32) {
	s.records.SetScalar(s.handle, FieldOrthoSize, v)
}

// Size returns the shadow map resolution.
func (s *Settings) Size() math.Vec2 {
	return s.size
}

// SetSize sets the shadow map resolution.
func (s *Settings) SetSize(sz math.Vec2) {
	s.size = sz
	s.records.SetVec2(s.handle, FieldSize, sz)
}

// PCF returns the shadow-map filtering kernel.
func (s *Settings) PCF() PCFType {
	return PCFType(s.records.Scalar(s.handle, FieldPCFType))
}

// SetPCF sets the shadow-map filtering kernel. The value is stored
// verbatim without range validation.
func (s *Settings) SetPCF(t PCFType) {
	s.records.SetScalar(s.handle, FieldPCFType, float32(t))
}

// Bias returns the shadow-map depth bias.
func (s *Settings) Bias() float32 {
	return s.records.Scalar(s.handle, FieldBias)
}

// SetBias sets the shadow-map depth bias.
func (s *Settings) SetBias(v float32) {
	s.records.SetScalar(s.handle, FieldBias, v)
}

// AutoAdapt reports whether the shadow camera adapts to the receive bounds.
func (s *Settings) AutoAdapt() bool {
	return s.records.Scalar(s.handle, FieldAutoAdapt) != 0
}

// SetAutoAdapt toggles shadow camera adaptation to the receive bounds.
func (s *Settings) SetAutoAdapt(v bool) {
	s.records.SetScalar(s.handle, FieldAutoAdapt, boolScalar(v))
}

// PlanarPass returns the pass-pool handle of the planar shadow pass, or
// pool.Nil before the material is compiled.
func (s *Settings) PlanarPass() pool.Handle {
	return pool.Handle(s.records.Scalar(s.handle, FieldPlanarPass))
}

// InstancedPass returns the pass-pool handle of the instanced planar
// shadow pass, or pool.Nil before the material is compiled.
func (s *Settings) InstancedPass() pool.Handle {
	return pool.Handle(s.records.Scalar(s.handle, FieldInstancePass))
}

// MatLightViewProj returns the light's view-projection matrix.
func (s *Settings) MatLightViewProj() math.Mat4 {
	return s.matLightVP
}

// SetMatLightViewProj stores the light's view-projection matrix.
func (s *Settings) SetMatLightViewProj(m math.Mat4) {
	s.matLightVP = m
	s.records.SetMat4(s.handle, FieldMatLightViewProj, m)
}

// Material returns the planar shadow material, or nil before it is
// compiled.
func (s *Settings) Material() *material.Material {
	return s.mat
}

// InstancingMaterial returns the instanced planar shadow material, or nil
// before it is compiled.
func (s *Settings) InstancingMaterial() *material.Material {
	return s.instancingMat
}

// Activate makes the record consistent with the current technique. Scene
// code calls it whenever the settings start being used; every call re-reads
// the current type and is independently correct.
func (s *Settings) Activate() error {
	if s.ShadowType() == TypeShadowMap {
		s.syncPipeline()
		return nil
	}
	return s.initPlanarMaterials()
}

// initPlanarMaterials guarantees both planar materials exist before planar
// rendering needs them. Each material is compiled at most once; a later
// call only fills in the missing one. Compilation failure propagates.
func (s *Settings) initPlanarMaterials() error {
	if s.mat == nil {
		m, err := s.factory.Compile(planarEffect, nil)
		if err != nil {
			return err
		}
		s.mat = m
		s.records.SetScalar(s.handle, FieldPlanarPass, float32(m.Passes[0].Handle))
	}
	if s.instancingMat == nil {
		m, err := s.factory.Compile(planarEffect, material.Defines{"USE_INSTANCING": true})
		if err != nil {
			return err
		}
		s.instancingMat = m
		s.records.SetScalar(s.handle, FieldInstancePass, float32(m.Passes[0].Handle))
	}
	return nil
}

// syncPipeline keeps the global receive-shadow flag equal to
// enabled && type == ShadowMap. Flipping the flag triggers a pipeline
// state-changed notification, which is expensive, so an unchanged flag
// short-circuits without notifying.
func (s *Settings) syncPipeline() {
	want := s.Enabled() && s.ShadowType() == TypeShadowMap
	if s.bridge.ReceiveShadowFlag() == want {
		return
	}
	s.bridge.SetReceiveShadowFlag(want)
	s.bridge.NotifyGlobalStateChanged()
}

// Destroy releases the materials, frees the pool handle and drops the
// bounding volumes. The handle free is idempotent; a second Destroy sees
// the nil handle and skips it.
func (s *Settings) Destroy() {
	if s.mat != nil {
		s.mat.Destroy()
	}
	if s.instancingMat != nil {
		s.instancingMat.Destroy()
	}
	if s.handle != pool.Nil {
		s.records.Free(s.handle)
		s.handle = pool.Nil
	}
	s.CastBounds = nil
	s.ReceiveBounds = nil
}

func boolScalar(v bool) float32 {
	if v {
		return 1
	}
	return 0
}
