package pipeline

import "testing"

func TestFlagDefaultsOff(t *testing.T) {
	s := NewState()
	if s.ReceiveShadowFlag() {
		t.Error("receive-shadow flag should default to false")
	}
}

func TestNotifyFansOut(t *testing.T) {
	s := NewState()
	var a, b int
	s.OnGlobalStateChanged(func() { a++ })
	s.OnGlobalStateChanged(func() { b++ })

	s.SetReceiveShadowFlag(true)
	s.NotifyGlobalStateChanged()
	s.NotifyGlobalStateChanged()

	if a != 2 || b != 2 {
		t.Errorf("listener calls: got a=%d b=%d, want 2 each", a, b)
	}
	if s.Revision() != 2 {
		t.Errorf("revision: got %d, want 2", s.Revision())
	}
}

func TestSetFlagDoesNotNotify(t *testing.T) {
	s := NewState()
	var n int
	s.OnGlobalStateChanged(func() { n++ })
	s.SetReceiveShadowFlag(true)
	if n != 0 {
		t.Errorf("SetReceiveShadowFlag should not notify, got %d calls", n)
	}
}
