// Package material models compiled shader effects as materials with
// ordered rendering passes, and provides the factory that compiles them.
package material

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emberfall/caster/internal/engine/pool"
)

// Pass is one compiled rendering pass of a material. Handle points into
// the pass pool that native render code walks; Program is the linked GL
// program id (zero for materials compiled by offline factories).
type Pass struct {
	Handle  pool.Handle
	Program uint32
}

// Material is a compiled effect. A material is created at most once per
// owner and destroyed exactly once.
type Material struct {
	Effect  string
	Defines Defines
	Passes  []Pass

	release   func()
	destroyed bool
}

// New assembles a material from compiled passes. release, if non-nil, is
// invoked by Destroy to return GPU resources.
func New(effect string, defines Defines, passes []Pass, release func()) *Material {
	return &Material{Effect: effect, Defines: defines, Passes: passes, release: release}
}

// Destroy releases the material's GPU resources. Further calls are no-ops.
func (m *Material) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	if m.release != nil {
		m.release()
	}
}

// Defines are preprocessor feature toggles applied when compiling an effect.
type Defines map[string]bool

// Lines renders the enabled defines as GLSL preprocessor lines, sorted for
// stable program cache keys.
func (d Defines) Lines() string {
	names := make([]string, 0, len(d))
	for name, on := range d {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "#define %s 1\n", name)
	}
	return b.String()
}

// Inject splices the define lines into a GLSL source, after the #version
// directive when present.
func (d Defines) Inject(source string) string {
	lines := d.Lines()
	if lines == "" {
		return source
	}
	if strings.HasPrefix(source, "#version") {
		if i := strings.IndexByte(source, '\n'); i >= 0 {
			return source[:i+1] + lines + source[i+1:]
		}
	}
	return lines + source
}
