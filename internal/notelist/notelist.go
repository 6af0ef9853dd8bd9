// Package notelist is the list presenter: it keeps the filtered note
// summaries, the cursor and the stats line in sync with the store.
package notelist

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/marcus/quill/internal/event"
	"github.com/marcus/quill/internal/store"
	"github.com/mattn/go-runewidth"
)

// TitleWidth is the display width at which list titles are cut.
const TitleWidth = 50

// ErrNoSelection is returned by operations that need a selected note.
var ErrNoSelection = errors.New("no note selected")

// NoteStore is the subset of the store the list reads and mutates.
type NoteStore interface {
	List(search, tag string) ([]store.Note, error)
	Get(id int64) (*store.Note, error)
	Update(id int64, title, content, tags string) error
	Delete(id int64) error
	ToggleFavorite(id int64) error
	Stats() (store.Stats, error)
}

// Bus is the event bus the list publishes to and listens on.
type Bus interface {
	Publish(event.Event)
	Subscribe(event.Type, event.Handler)
}

// Summary is one rendered list row.
type Summary struct {
	ID       int64
	Title    string
	Updated  string
	Tags     string
	Favorite bool
}

// List is the list presenter. Not safe for concurrent use.
type List struct {
	store  NoteStore
	bus    Bus
	logger *slog.Logger

	search string
	tag    string
	items  []Summary
	stats  store.Stats
	cursor int
}

// New creates a list presenter and subscribes it to save notifications.
func New(s NoteStore, bus Bus, logger *slog.Logger) *List {
	if logger == nil {
		logger = slog.Default()
	}
	l := &List{store: s, bus: bus, logger: logger}
	if bus != nil {
		bus.Subscribe(event.TypeSaved, l.onSaved)
	}
	return l
}

func (l *List) onSaved(e event.Event) {
	saved, ok := e.(event.Saved)
	if !ok {
		return
	}
	if err := l.Reload(l.search); err != nil {
		l.logger.Error("notelist: reload after save", "error", err)
		return
	}
	// Keep the cursor on the note that was just written.
	l.Focus(saved.ID)
}

// Reload queries the store with search and the current tag filter and
// rebuilds rows and stats. The cursor stays on the same note when it is
// still listed.
func (l *List) Reload(search string) error {
	prev := l.SelectedID()
	l.search = search

	notes, err := l.store.List(search, l.tag)
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}
	stats, err := l.store.Stats()
	if err != nil {
		return fmt.Errorf("note stats: %w", err)
	}

	items := make([]Summary, 0, len(notes))
	for _, n := range notes {
		items = append(items, summarize(n))
	}
	l.items = items
	l.stats = stats

	if !l.Focus(prev) {
		l.clampCursor()
	}
	return nil
}

// SetTagFilter restricts the list to notes whose tags contain tag.
func (l *List) SetTagFilter(tag string) error {
	l.tag = tag
	return l.Reload(l.search)
}

// Search returns the active search string.
func (l *List) Search() string { return l.search }

// TagFilter returns the active tag filter.
func (l *List) TagFilter() string { return l.tag }

// Items returns the current rows.
func (l *List) Items() []Summary { return l.items }

// Len returns the number of rows.
func (l *List) Len() int { return len(l.items) }

// Stats returns the counts from the last reload.
func (l *List) Stats() store.Stats { return l.stats }

// StatsLine formats the stats for the footer.
func (l *List) StatsLine() string {
	return fmt.Sprintf("Total: %d | Favorites: %d", l.stats.Total, l.stats.Favorites)
}

// Cursor returns the selected row index.
func (l *List) Cursor() int { return l.cursor }

// SelectedID returns the id under the cursor, 0 when the list is empty.
func (l *List) SelectedID() int64 {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return 0
	}
	return l.items[l.cursor].ID
}

// MoveUp moves the cursor one row up.
func (l *List) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the cursor one row down.
func (l *List) MoveDown() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
	}
}

// MoveTop jumps to the first row.
func (l *List) MoveTop() { l.cursor = 0 }

// MoveBottom jumps to the last row.
func (l *List) MoveBottom() {
	l.cursor = max(len(l.items)-1, 0)
}

// Select loads the note under the cursor and publishes it.
func (l *List) Select() error {
	id := l.SelectedID()
	if id == 0 {
		return ErrNoSelection
	}
	note, err := l.store.Get(id)
	if err != nil {
		return fmt.Errorf("load note %d: %w", id, err)
	}
	if note == nil {
		// Deleted elsewhere; drop the stale row.
		return l.Reload(l.search)
	}
	if l.bus != nil {
		l.bus.Publish(event.Selected{
			ID:      note.ID,
			Title:   note.Title,
			Content: note.Content,
			Tags:    note.Tags,
		})
	}
	return nil
}

// Delete removes the note and reloads.
func (l *List) Delete(id int64) error {
	if id == 0 {
		return ErrNoSelection
	}
	if err := l.store.Delete(id); err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	return l.Reload(l.search)
}

// ToggleFavorite flips the favorite flag of the selected note.
func (l *List) ToggleFavorite() error {
	id := l.SelectedID()
	if id == 0 {
		return ErrNoSelection
	}
	if err := l.store.ToggleFavorite(id); err != nil {
		return fmt.Errorf("toggle favorite %d: %w", id, err)
	}
	return l.Reload(l.search)
}

// AddTag appends tag to the selected note's tags string.
func (l *List) AddTag(tag string) error {
	id := l.SelectedID()
	if id == 0 {
		return ErrNoSelection
	}
	if tag == "" {
		return nil
	}
	note, err := l.store.Get(id)
	if err != nil {
		return fmt.Errorf("load note %d: %w", id, err)
	}
	if note == nil {
		return l.Reload(l.search)
	}
	tags := tag
	if note.Tags != "" {
		tags = note.Tags + "," + tag
	}
	if err := l.store.Update(id, note.Title, note.Content, tags); err != nil {
		return fmt.Errorf("tag note %d: %w", id, err)
	}
	return l.Reload(l.search)
}

// Focus moves the cursor to id and reports whether it was found.
func (l *List) Focus(id int64) bool {
	if id == 0 {
		return false
	}
	for i, it := range l.items {
		if it.ID == id {
			l.cursor = i
			return true
		}
	}
	return false
}

func (l *List) clampCursor() {
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func summarize(n store.Note) Summary {
	return Summary{
		ID:       n.ID,
		Title:    truncateTitle(n.Title),
		Updated:  n.UpdatedAt.Local().Format("2006-01-02 15:04"),
		Tags:     n.Tags,
		Favorite: n.Favorite,
	}
}

// truncateTitle cuts titles wider than TitleWidth cells and appends "...".
func truncateTitle(title string) string {
	if runewidth.StringWidth(title) <= TitleWidth {
		return title
	}
	return runewidth.Truncate(title, TitleWidth, "") + "..."
}
