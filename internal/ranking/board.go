// Package ranking keeps the party leaderboard and the per-player score
// tally that feeds it.
package ranking

import (
	"sort"
	"strings"
	"time"
)

// DefaultSize is the number of entries kept on the board.
const DefaultSize = 10

// Entry is one line of the leaderboard.
type Entry struct {
	Name      string
	Total     int       // Sum of the player's game scores
	CreatedAt time.Time // When this total was committed
	Seq       int64     // Insertion order; earlier wins ties
}

// Board is a leaderboard holding the best total per name, sorted by
// descending total, ties broken by insertion order, capped to size entries.
type Board struct {
	size    int
	entries []Entry
	seq     int64
}

// NewBoard creates a board from previously saved entries. The entries are
// normalized: one per name, sorted, truncated.
func NewBoard(size int, entries []Entry) *Board {
	if size <= 0 {
		size = DefaultSize
	}
	b := &Board{size: size}

	best := make(map[string]int, len(entries))
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			continue
		}
		if e.Seq > b.seq {
			b.seq = e.Seq
		}
		if i, ok := best[e.Name]; ok {
			if e.Total > b.entries[i].Total {
				b.entries[i] = e
			}
			continue
		}
		best[e.Name] = len(b.entries)
		b.entries = append(b.entries, e)
	}
	b.sortAndTrim()
	return b
}

// Commit offers total under name. An existing entry for the name is only
// replaced by a strictly higher total. Returns true if the board changed.
func (b *Board) Commit(name string, total int, now time.Time) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	for i, e := range b.entries {
		if e.Name != name {
			continue
		}
		if total <= e.Total {
			return false
		}
		b.seq++
		b.entries[i] = Entry{Name: name, Total: total, CreatedAt: now, Seq: b.seq}
		b.sortAndTrim()
		return true
	}

	if len(b.entries) >= b.size && total <= b.entries[len(b.entries)-1].Total {
		// Would land below the cut; a tie loses to the earlier entry.
		return false
	}
	b.seq++
	b.entries = append(b.entries, Entry{Name: name, Total: total, CreatedAt: now, Seq: b.seq})
	b.sortAndTrim()
	return true
}

func (b *Board) sortAndTrim() {
	sort.SliceStable(b.entries, func(i, j int) bool {
		if b.entries[i].Total != b.entries[j].Total {
			return b.entries[i].Total > b.entries[j].Total
		}
		return b.entries[i].Seq < b.entries[j].Seq
	})
	if len(b.entries) > b.size {
		b.entries = b.entries[:b.size]
	}
}

// Entries returns a copy of the board, best first.
func (b *Board) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Rank returns the 1-based position of name, or 0 if it is not listed.
func (b *Board) Rank(name string) int {
	name = strings.TrimSpace(name)
	for i, e := range b.entries {
		if e.Name == name {
			return i + 1
		}
	}
	return 0
}

// Len returns the number of entries.
func (b *Board) Len() int {
	return len(b.entries)
}

// Size returns the capacity of the board.
func (b *Board) Size() int {
	return b.size
}
