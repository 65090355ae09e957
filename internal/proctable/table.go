// Package proctable keeps the table of live processes between ticks and
// serves sorted, filtered views of it.
//
// Writers build the post-tick table off to the side and swap it in under the
// write lock, so readers only ever see a whole tick.
package proctable

import (
	"slices"
	"strings"
	"sync"

	"github.com/rileyhilliard/ptop/internal/rank"
	"github.com/rileyhilliard/ptop/internal/rates"
	"github.com/rileyhilliard/ptop/internal/sampler"
)

// Entry is one row of the process table.
type Entry struct {
	PID  int32
	PPID int32
	Name string

	CPUPercent  float64
	MemoryBytes uint64

	DiskReadRate  float64
	DiskWriteRate float64
	NetRecvRate   float64
	NetSendRate   float64

	// LastSeenTick is the tick number that last refreshed this entry.
	LastSeenTick uint64
}

// Filter hides entries from Snapshot. The zero value shows everything.
type Filter struct {
	// Name is a case-insensitive substring of the command name.
	Name string
	// MinMemory hides entries with a smaller resident set.
	MinMemory uint64
}

func (f Filter) match(e Entry) bool {
	if e.MemoryBytes < f.MinMemory {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(f.Name)) {
		return false
	}
	return true
}

// Table maps pid to its latest Entry.
type Table struct {
	mu         sync.RWMutex
	entries    map[int32]Entry
	filter     Filter
	evictAfter uint64
}

// New creates an empty table. An entry not refreshed for evictAfter
// consecutive ticks is removed; values below 1 are treated as 1, which
// drops a process on the first tick it is missing.
func New(evictAfter int) *Table {
	if evictAfter < 1 {
		evictAfter = 1
	}
	return &Table{
		entries:    make(map[int32]Entry),
		evictAfter: uint64(evictAfter),
	}
}

// Update applies one tick. Every pid in computed is upserted with its rates
// and the matching sample's identity and memory, stamped with tick. Entries
// left untouched for evictAfter ticks are then swept.
//
// Update has a single caller (the refresh loop); it is safe against
// concurrent readers but not against a second concurrent Update.
func (t *Table) Update(computed map[int32]rates.ProcessRates, samples map[int32]sampler.RawSample, tick uint64) {
	t.mu.RLock()
	old := t.entries
	t.mu.RUnlock()

	next := make(map[int32]Entry, len(computed))
	for pid, e := range old {
		if tick-e.LastSeenTick < t.evictAfter {
			next[pid] = e
		}
	}

	for pid, r := range computed {
		e := next[pid]
		e.PID = pid
		if s, ok := samples[pid]; ok {
			e.PPID = s.PPID
			e.Name = s.Name
			e.MemoryBytes = s.RSSBytes
		}
		e.CPUPercent = r.CPUPercent
		e.DiskReadRate = r.ReadRate
		e.DiskWriteRate = r.WriteRate
		e.NetRecvRate = r.RecvRate
		e.NetSendRate = r.SendRate
		e.LastSeenTick = tick
		next[pid] = e
	}

	t.mu.Lock()
	t.entries = next
	t.mu.Unlock()
}

// SetFilter replaces the display filter. The table contents are untouched.
func (t *Table) SetFilter(f Filter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter = f
}

// Filter returns the current display filter.
func (t *Table) Filter() Filter {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.filter
}

// Len returns the number of entries, ignoring the filter.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Get returns the entry for pid.
func (t *Table) Get(pid int32) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[pid]
	return e, ok
}

// Snapshot returns filtered entries ordered by key. Ties are broken by pid
// ascending in both directions. limit <= 0 returns every match.
func (t *Table) Snapshot(key SortKey, desc bool, limit int) []Entry {
	t.mu.RLock()
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if t.filter.match(e) {
			out = append(out, e)
		}
	}
	t.mu.RUnlock()

	slices.SortStableFunc(out, Comparator(key, desc))

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Comparator returns the ordering Snapshot uses for key.
func Comparator(key SortKey, desc bool) func(a, b Entry) int {
	return rank.Stable(keyOrder(key), entryPID, desc)
}

func entryPID(e Entry) int32 { return e.PID }

func keyOrder(key SortKey) func(a, b Entry) int {
	switch key {
	case SortByMemory:
		return rank.By(func(e Entry) uint64 { return e.MemoryBytes })
	case SortByPID:
		return rank.By(entryPID)
	case SortByName:
		return rank.By(func(e Entry) string { return strings.ToLower(e.Name) })
	default:
		return rank.By(func(e Entry) float64 { return e.CPUPercent })
	}
}
