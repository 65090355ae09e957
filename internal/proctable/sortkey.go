package proctable

import (
	"fmt"
	"strings"
)

// SortKey defines which column the process list is ordered by.
type SortKey int

const (
	SortByCPU SortKey = iota
	SortByMemory
	SortByPID
	SortByName

	sortKeyCount
)

// String returns the config/CLI name of the sort key.
func (k SortKey) String() string {
	switch k {
	case SortByCPU:
		return "cpu"
	case SortByMemory:
		return "memory"
	case SortByPID:
		return "pid"
	case SortByName:
		return "name"
	default:
		return "cpu"
	}
}

// Next cycles to the next sort key.
func (k SortKey) Next() SortKey {
	return SortKey((int(k) + 1) % int(sortKeyCount))
}

// SortKeyNames returns the canonical sort key names in cycle order.
func SortKeyNames() []string {
	names := make([]string, 0, sortKeyCount)
	for k := SortKey(0); k < sortKeyCount; k++ {
		names = append(names, k.String())
	}
	return names
}

// ParseSortKey accepts cpu, memory (or mem), pid, and name, case-insensitively.
// An empty string means cpu.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpu", "":
		return SortByCPU, nil
	case "memory", "mem", "rss":
		return SortByMemory, nil
	case "pid":
		return SortByPID, nil
	case "name", "command":
		return SortByName, nil
	default:
		return SortByCPU, fmt.Errorf("unknown sort key %q", s)
	}
}
