package material

import (
	"strings"
	"testing"
)

func TestDefinesLinesSorted(t *testing.T) {
	d := Defines{"USE_INSTANCING": true, "ALPHA_TEST": true, "DISABLED": false}
	got := d.Lines()
	want := "#define ALPHA_TEST 1\n#define USE_INSTANCING 1\n"
	if got != want {
		t.Errorf("Lines: got %q, want %q", got, want)
	}
}

func TestInjectAfterVersion(t *testing.T) {
	src := "#version 410 core\nvoid main() {}\n"
	got := Defines{"USE_INSTANCING": true}.Inject(src)

	if !strings.HasPrefix(got, "#version 410 core\n#define USE_INSTANCING 1\n") {
		t.Errorf("defines should follow the #version line, got:\n%s", got)
	}
	if !strings.HasSuffix(got, "void main() {}\n") {
		t.Errorf("source body should be preserved, got:\n%s", got)
	}
}

func TestInjectNoDefines(t *testing.T) {
	src := "#version 410 core\nvoid main() {}\n"
	if got := (Defines{}).Inject(src); got != src {
		t.Errorf("empty defines should leave source untouched, got:\n%s", got)
	}
}

func TestInjectWithoutVersionLine(t *testing.T) {
	src := "void main() {}\n"
	got := Defines{"X": true}.Inject(src)
	if !strings.HasPrefix(got, "#define X 1\n") {
		t.Errorf("defines should be prepended when no #version line, got:\n%s", got)
	}
}

func TestDestroyOnce(t *testing.T) {
	var released int
	m := New("pipeline/planar-shadow", nil, []Pass{{Handle: 0}}, func() { released++ })

	m.Destroy()
	m.Destroy()

	if released != 1 {
		t.Errorf("release calls: got %d, want 1", released)
	}
}
