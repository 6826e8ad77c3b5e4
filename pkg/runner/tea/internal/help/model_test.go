package help

import (
	"strings"
	"testing"
)

func TestViewShowsKeys(t *testing.T) {
	m := New(60, 40, "notty")
	view := m.View()
	for _, want := range []string{"ctrl+s", "Save the offered entry", "tab"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in help:\n%s", want, view)
		}
	}
}

func TestSetSizeClamps(t *testing.T) {
	m := New(5, 2, "notty")
	if m.width != 32 || m.height != 8 {
		t.Fatalf("expected minimum size, got %dx%d", m.width, m.height)
	}
}
