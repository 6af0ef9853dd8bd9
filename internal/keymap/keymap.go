// Package keymap maps key presses to command ids per focus context.
package keymap

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Binding maps a key (or a space-separated key sequence such as "g g") to a
// command in a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Command is a named, footer-visible action.
type Command struct {
	ID       string
	Name     string
	Context  string
	Priority int // lower shows first
}

// Registry holds bindings, commands and user overrides.
// It also tracks a pending key for multi-key sequences.
type Registry struct {
	bindings  map[string][]Binding // context -> bindings
	commands  map[string][]Command // context -> commands
	overrides map[string]string    // key -> command id
	pending   string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:  make(map[string][]Binding),
		commands:  make(map[string][]Command),
		overrides: make(map[string]string),
	}
}

// RegisterBinding adds a binding.
func (r *Registry) RegisterBinding(b Binding) {
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
}

// RegisterCommand adds a command.
func (r *Registry) RegisterCommand(c Command) {
	r.commands[c.Context] = append(r.commands[c.Context], c)
}

// SetUserOverride binds key to cmdID in every context where cmdID is
// bound, replacing whatever that key did there.
func (r *Registry) SetUserOverride(key, cmdID string) {
	r.overrides[key] = cmdID
}

// BindingsForContext returns the effective bindings for a context, with
// user overrides applied.
func (r *Registry) BindingsForContext(context string) []Binding {
	base := r.bindings[context]
	out := make([]Binding, 0, len(base))

	hasCmd := make(map[string]bool, len(base))
	for _, b := range base {
		hasCmd[b.Command] = true
	}
	for _, b := range base {
		if cmd, ok := r.overrides[b.Key]; ok && cmd != b.Command {
			continue
		}
		out = append(out, b)
	}

	keys := make([]string, 0, len(r.overrides))
	for k := range r.overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd := r.overrides[k]
		if !hasCmd[cmd] || containsBinding(out, k, cmd) {
			continue
		}
		out = append(out, Binding{Key: k, Command: cmd, Context: context})
	}
	return out
}

func containsBinding(bs []Binding, key, cmd string) bool {
	for _, b := range bs {
		if b.Key == key && b.Command == cmd {
			return true
		}
	}
	return false
}

// Resolve maps a key press to a command id, looking in context first and
// then in the global context. A key that starts a sequence returns
// ("", false) and is remembered until the next call.
func (r *Registry) Resolve(k string, context string) (string, bool) {
	seq := k
	if r.pending != "" {
		seq = r.pending + " " + k
		r.pending = ""
	}

	for _, ctx := range []string{context, ContextGlobal} {
		bindings := r.BindingsForContext(ctx)
		for _, b := range bindings {
			if b.Key == seq {
				return b.Command, true
			}
		}
		if seq == k {
			for _, b := range bindings {
				if strings.HasPrefix(b.Key, k+" ") {
					r.pending = k
					return "", false
				}
			}
		}
	}
	return "", false
}

// Pending reports the first key of an unfinished sequence.
func (r *Registry) Pending() string { return r.pending }

// KeysFor returns the keys bound to cmdID in context.
func (r *Registry) KeysFor(cmdID, context string) []string {
	var keys []string
	for _, b := range r.BindingsForContext(context) {
		if b.Command == cmdID {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// Commands returns the commands of a context sorted by priority.
func (r *Registry) Commands(context string) []Command {
	cmds := append([]Command(nil), r.commands[context]...)
	sort.SliceStable(cmds, func(i, j int) bool {
		return cmds[i].Priority < cmds[j].Priority
	})
	return cmds
}

// HelpBindings returns bubbles key bindings for the commands of a context
// that have at least one key, for rendering footers and help.
func (r *Registry) HelpBindings(context string) []key.Binding {
	var out []key.Binding
	for _, c := range r.Commands(context) {
		keys := r.KeysFor(c.ID, context)
		if len(keys) == 0 {
			keys = r.KeysFor(c.ID, ContextGlobal)
		}
		if len(keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(FormatKeys(keys), c.Name),
		))
	}
	return out
}

// FormatKeys joins keys for display, e.g. "j/down".
func FormatKeys(keys []string) string {
	if len(keys) > 2 {
		keys = keys[:2]
	}
	return strings.Join(keys, "/")
}
