package history

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSerialization marks a capture that could not be encoded.
	ErrSerialization = errors.New("history: snapshot could not be encoded")
	// ErrRestore marks an entry that could not be decoded or applied.
	ErrRestore = errors.New("history: snapshot could not be restored")
)

// Target is the surface whose state is recorded.
type Target interface {
	Snapshot() *image.RGBA
	Restore(img *image.RGBA) error
}

// Entry is one immutable capture of the surface.
type Entry struct {
	ID        string
	Revision  uint64
	Data      []byte
	CreatedAt time.Time
}

// Manager keeps a linear list of snapshots and a cursor pointing at the
// entry that is currently on the surface.
type Manager struct {
	target  Target
	codec   Codec
	entries []Entry
	cursor  int
	clock   revisionClock
}

// New creates a manager seeded with the current state of target.
func New(target Target, codec Codec) (*Manager, error) {
	if codec == nil {
		codec = PNG{}
	}
	m := &Manager{target: target, codec: codec}
	e, err := m.encode()
	if err != nil {
		return nil, err
	}
	m.entries = []Entry{e}
	return m, nil
}

func (m *Manager) encode() (Entry, error) {
	data, err := m.codec.Encode(m.target.Snapshot())
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return Entry{
		ID:        uuid.NewString(),
		Revision:  m.clock.next(),
		Data:      data,
		CreatedAt: time.Now(),
	}, nil
}

// Capture records the surface as a new entry. It returns false when the
// surface is unchanged since the entry under the cursor. Entries after the
// cursor are dropped before appending.
func (m *Manager) Capture() (bool, error) {
	e, err := m.encode()
	if err != nil {
		log.Printf("[HISTORY] Capture dropped: %v", err)
		return false, err
	}
	if bytes.Equal(e.Data, m.entries[m.cursor].Data) {
		return false, nil
	}
	if dropped := len(m.entries) - 1 - m.cursor; dropped > 0 {
		log.Printf("[HISTORY] Discarding %d redo entries", dropped)
	}
	m.entries = append(m.entries[:m.cursor+1:m.cursor+1], e)
	m.cursor = len(m.entries) - 1
	log.Printf("[HISTORY] Captured revision %d (%d bytes), %d entries", e.Revision, len(e.Data), len(m.entries))
	return true, nil
}

// Undo steps back one entry. It returns false at the oldest entry.
func (m *Manager) Undo() (bool, error) {
	if !m.CanUndo() {
		return false, nil
	}
	return m.moveTo(m.cursor - 1)
}

// Redo steps forward one entry. It returns false at the newest entry.
func (m *Manager) Redo() (bool, error) {
	if !m.CanRedo() {
		return false, nil
	}
	return m.moveTo(m.cursor + 1)
}

// moveTo restores entries[i] and only then moves the cursor.
func (m *Manager) moveTo(i int) (bool, error) {
	img, err := m.codec.Decode(m.entries[i].Data)
	if err != nil {
		log.Printf("[HISTORY] Restore of revision %d failed: %v", m.entries[i].Revision, err)
		return false, fmt.Errorf("%w: %v", ErrRestore, err)
	}
	if err := m.target.Restore(img); err != nil {
		log.Printf("[HISTORY] Restore of revision %d failed: %v", m.entries[i].Revision, err)
		return false, fmt.Errorf("%w: %v", ErrRestore, err)
	}
	m.cursor = i
	return true, nil
}

func (m *Manager) CanUndo() bool { return m.cursor > 0 }
func (m *Manager) CanRedo() bool { return m.cursor < len(m.entries)-1 }

// Len returns the number of entries, including the seed.
func (m *Manager) Len() int { return len(m.entries) }

// Cursor returns the index of the entry on the surface.
func (m *Manager) Cursor() int { return m.cursor }

// Current returns the entry under the cursor.
func (m *Manager) Current() Entry { return m.entries[m.cursor] }

// Entries returns a copy of the entry list.
func (m *Manager) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Codec returns the codec used for entries.
func (m *Manager) Codec() Codec { return m.codec }
