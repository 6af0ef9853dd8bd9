package keymap

import (
	"reflect"
	"testing"
)

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func TestResolve(t *testing.T) {
	r := newDefaultRegistry()

	tests := []struct {
		key, context, want string
	}{
		{"n", ContextList, CmdNewNote},
		{"enter", ContextList, CmdSelect},
		{"ctrl+s", ContextList, CmdSave},   // falls back to global
		{"ctrl+s", ContextEditor, CmdSave}, // falls back to global
		{"esc", ContextEditor, CmdSwitchPane},
		{"ctrl+c", ContextEditor, CmdQuit},
	}
	for _, tt := range tests {
		got, ok := r.Resolve(tt.key, tt.context)
		if !ok || got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, %v; want %q", tt.key, tt.context, got, ok, tt.want)
		}
	}

	// Plain letters are not bound in the editor, they are typed.
	if got, ok := r.Resolve("n", ContextEditor); ok {
		t.Errorf("Resolve(n, editor) = %q, want unbound", got)
	}
}

func TestResolve_Sequence(t *testing.T) {
	r := newDefaultRegistry()

	if _, ok := r.Resolve("g", ContextList); ok {
		t.Fatal("first key of a sequence should not resolve")
	}
	if r.Pending() != "g" {
		t.Fatalf("Pending() = %q, want g", r.Pending())
	}
	got, ok := r.Resolve("g", ContextList)
	if !ok || got != CmdCursorTop {
		t.Errorf("sequence resolved to %q, %v", got, ok)
	}
	if r.Pending() != "" {
		t.Error("pending should be cleared")
	}

	// A broken sequence drops the pending key.
	r.Resolve("g", ContextList)
	if _, ok := r.Resolve("x", ContextList); ok {
		t.Error("g x should not resolve")
	}
	if got, ok := r.Resolve("n", ContextList); !ok || got != CmdNewNote {
		t.Errorf("after broken sequence got %q, %v", got, ok)
	}
}

func TestSetUserOverride(t *testing.T) {
	r := newDefaultRegistry()
	r.SetUserOverride("a", CmdAddTag)
	r.SetUserOverride("n", CmdSearch)

	if got, _ := r.Resolve("a", ContextList); got != CmdAddTag {
		t.Errorf("override a -> %q, want %q", got, CmdAddTag)
	}
	if got, _ := r.Resolve("n", ContextList); got != CmdSearch {
		t.Errorf("override n -> %q, want %q", got, CmdSearch)
	}
	// Override only lands where the command exists.
	if got, ok := r.Resolve("a", ContextEditor); ok {
		t.Errorf("a resolved in editor to %q", got)
	}
	// Editor keeps its own new-note binding.
	if got, _ := r.Resolve("ctrl+n", ContextEditor); got != CmdNewNote {
		t.Errorf("ctrl+n -> %q", got)
	}
}

func TestKeysFor(t *testing.T) {
	r := newDefaultRegistry()
	got := r.KeysFor(CmdCursorDown, ContextList)
	if !reflect.DeepEqual(got, []string{"j", "down"}) {
		t.Errorf("KeysFor(cursor-down) = %v", got)
	}
}

func TestHelpBindings(t *testing.T) {
	r := newDefaultRegistry()

	hb := r.HelpBindings(ContextEditor)
	if len(hb) == 0 {
		t.Fatal("expected editor help bindings")
	}
	// save is bound globally but listed first for the editor.
	if h := hb[0].Help(); h.Key != "ctrl+s" || h.Desc != "save" {
		t.Errorf("first editor hint = %+v", h)
	}

	for _, b := range r.HelpBindings(ContextList) {
		if b.Help().Desc == "delete" && b.Help().Key != "d/delete" {
			t.Errorf("delete hint keys = %q", b.Help().Key)
		}
	}
}

func TestFormatKeys(t *testing.T) {
	if got := FormatKeys([]string{"j", "down", "ctrl+n"}); got != "j/down" {
		t.Errorf("FormatKeys = %q", got)
	}
}
