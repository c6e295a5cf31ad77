package material

import (
	"embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/emberfall/caster/internal/engine/pool"
	"github.com/emberfall/caster/internal/logger"
)

//go:embed effects
var effectFS embed.FS

// effectSources maps effect names to embedded GLSL stage sources.
var effectSources = map[string]struct{ vert, frag string }{
	"pipeline/planar-shadow": {
		vert: "effects/planar-shadow.vert",
		frag: "effects/planar-shadow.frag",
	},
}

// PassFieldProgram holds the linked GL program id in a pass record.
const PassFieldProgram pool.FieldID = 0

// PassSchema is the pass pool record schema used by GLFactory.
var PassSchema = []pool.Kind{pool.Scalar}

// GLFactory compiles embedded GLSL effects into single-pass GL materials.
// Pass records are allocated from the shared pass pool so native render
// code can address them by handle.
type GLFactory struct {
	passes *pool.Pool
}

// NewGLFactory creates a factory allocating passes from the given pool.
// The pool must use PassSchema.
func NewGLFactory(passes *pool.Pool) *GLFactory {
	return &GLFactory{passes: passes}
}

// Compile builds the effect's program with the defines injected into every
// stage. A GL context must be current on the calling thread.
func (f *GLFactory) Compile(effect string, defines Defines) (*Material, error) {
	src, ok := effectSources[effect]
	if !ok {
		return nil, fmt.Errorf("material: unknown effect %q", effect)
	}
	vert, err := effectFS.ReadFile(src.vert)
	if err != nil {
		return nil, fmt.Errorf("material: effect %q: %w", effect, err)
	}
	frag, err := effectFS.ReadFile(src.frag)
	if err != nil {
		return nil, fmt.Errorf("material: effect %q: %w", effect, err)
	}

	program, err := compileProgram(defines.Inject(string(vert)), defines.Inject(string(frag)))
	if err != nil {
		return nil, fmt.Errorf("material: effect %q: %w", effect, err)
	}

	h := f.passes.Alloc()
	f.passes.SetScalar(h, PassFieldProgram, float32(program))

	logger.Debug("effect compiled",
		zap.String("effect", effect),
		zap.String("defines", defines.Lines()),
		zap.Int32("pass", int32(h)),
	)

	passes := []Pass{{Handle: h, Program: program}}
	release := func() {
		gl.DeleteProgram(program)
		f.passes.Free(h)
	}
	return New(effect, defines, passes, release), nil
}

// compileProgram compiles vertex and fragment stages and links them.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader stage.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}
