// Package editor holds the transient edit state of a single note and
// decides when and how it is written back to the store.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/marcus/quill/internal/event"
	"github.com/marcus/quill/internal/store"
)

// State tracks unsaved-change status.
type State int

const (
	StateEmpty State = iota // no note loaded
	StateClean              // loaded or just saved, nothing pending
	StateDirty              // edited since load/save
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	default:
		return "empty"
	}
}

var (
	// ErrEmptyTitle is returned when saving a note whose title is blank.
	ErrEmptyTitle = errors.New("title is required")
	// ErrStorage wraps failures reported by the store during save.
	ErrStorage = errors.New("storage error")
)

// NoteStore is the subset of the store the editor writes through.
type NoteStore interface {
	Create(title, content, tags string) (int64, error)
	Update(id int64, title, content, tags string) error
	Get(id int64) (*store.Note, error)
}

// Publisher receives the editor's saved notifications.
type Publisher interface {
	Publish(event.Event)
}

// Editor is the editor presenter. It is not safe for concurrent use; the
// shell drives it from its event loop.
type Editor struct {
	store  NoteStore
	bus    Publisher
	logger *slog.Logger
	now    func() time.Time

	state   State
	id      int64 // 0 = not yet persisted
	title   string
	content string
	tags    string

	// digest of the last values written to or read from the store
	savedDigest uint64
	meta        *store.Note
}

// New creates an editor in the Empty state.
func New(s NoteStore, bus Publisher, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		store:  s,
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}
}

// State returns the current state.
func (e *Editor) State() State { return e.state }

// ID returns the id of the loaded note, 0 when none.
func (e *Editor) ID() int64 { return e.id }

// Title returns the in-memory title.
func (e *Editor) Title() string { return e.title }

// Content returns the in-memory body.
func (e *Editor) Content() string { return e.content }

// Tags returns the in-memory tags string.
func (e *Editor) Tags() string { return e.tags }

// CanSave reports whether a manual save would write anything.
func (e *Editor) CanSave() bool { return e.state == StateDirty }

// Load replaces the in-memory note and moves to Clean, whatever the
// previous state was.
func (e *Editor) Load(sel event.Selected) {
	e.id = sel.ID
	e.title = sel.Title
	e.content = sel.Content
	e.tags = sel.Tags
	e.state = StateClean
	e.savedDigest = digest(strings.TrimSpace(sel.Title), sel.Content, sel.Tags)
	e.refreshMeta()
}

// SetTitle records a title edit.
func (e *Editor) SetTitle(title string) {
	if title == e.title {
		return
	}
	e.title = title
	e.state = StateDirty
}

// SetContent records a body edit.
func (e *Editor) SetContent(content string) {
	if content == e.content {
		return
	}
	e.content = content
	e.state = StateDirty
}

// SetTags records a tags edit.
func (e *Editor) SetTags(tags string) {
	if tags == e.tags {
		return
	}
	e.tags = tags
	e.state = StateDirty
}

// Save writes the note when Dirty. A new note is created and its id
// adopted; an existing one is updated. On failure the editor stays Dirty.
func (e *Editor) Save() error {
	if e.state != StateDirty {
		return nil
	}

	title := strings.TrimSpace(e.title)
	if title == "" {
		return ErrEmptyTitle
	}

	created := false
	if e.id == 0 {
		id, err := e.store.Create(title, e.content, e.tags)
		if err != nil {
			e.logger.Error("editor: create failed", "error", err)
			return fmt.Errorf("%w: %w", ErrStorage, err)
		}
		e.id = id
		created = true
	} else {
		if err := e.store.Update(e.id, title, e.content, e.tags); err != nil {
			e.logger.Error("editor: update failed", "id", e.id, "error", err)
			return fmt.Errorf("%w: %w", ErrStorage, err)
		}
	}

	e.state = StateClean
	e.savedDigest = digest(title, e.content, e.tags)
	e.refreshMeta()
	e.logger.Debug("editor: saved", "id", e.id, "created", created)

	if e.bus != nil {
		e.bus.Publish(event.Saved{ID: e.id, Created: created})
	}
	return nil
}

// Autosave saves only when Dirty with a non-blank title. If the text is
// back to what was last persisted the editor turns Clean without writing.
// It reports whether a write happened.
func (e *Editor) Autosave() (bool, error) {
	if e.state != StateDirty {
		return false, nil
	}
	title := strings.TrimSpace(e.title)
	if title == "" {
		return false, nil
	}
	if e.id != 0 && digest(title, e.content, e.tags) == e.savedDigest {
		e.state = StateClean
		return false, nil
	}
	if err := e.Save(); err != nil {
		return false, err
	}
	return true, nil
}

// New discards the in-memory note and returns to Empty.
func (e *Editor) New() {
	e.id = 0
	e.title = ""
	e.content = ""
	e.tags = ""
	e.state = StateEmpty
	e.savedDigest = 0
	e.meta = nil
}

// RequestClear clears the editor unless there are unsaved edits, in which
// case nothing changes and true is returned so the caller can confirm and
// then call Discard.
func (e *Editor) RequestClear() (needsConfirm bool) {
	if e.state == StateDirty {
		return true
	}
	e.New()
	return false
}

// Discard drops unsaved edits after the user confirmed.
func (e *Editor) Discard() { e.New() }

// Info describes the loaded note's timestamps, empty when nothing is
// persisted yet.
func (e *Editor) Info() string {
	if e.meta == nil {
		return ""
	}
	created := e.meta.CreatedAt.Local().Format("2006-01-02 15:04:05")
	updated := e.meta.UpdatedAt.Local().Format("2006-01-02 15:04:05")
	return fmt.Sprintf("Created: %s | Updated: %s (%s)",
		created, updated, humanize.RelTime(e.meta.UpdatedAt, e.now(), "ago", "from now"))
}

func (e *Editor) refreshMeta() {
	e.meta = nil
	if e.id == 0 || e.store == nil {
		return
	}
	note, err := e.store.Get(e.id)
	if err != nil {
		e.logger.Debug("editor: info lookup failed", "id", e.id, "error", err)
		return
	}
	e.meta = note
}

// digest fingerprints the persisted fields.
func digest(title, content, tags string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(title)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(content)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(tags)
	return d.Sum64()
}
