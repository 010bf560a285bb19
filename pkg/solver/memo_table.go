package solver

import (
	"encoding/binary"
	"slices"

	"github.com/zeebo/xxh3"
)

type memoEntry struct {
	index  int
	caps   []int
	value  float64 // Minimal dissatisfaction sum of students index..n-1 given caps
	choice int     // Position in the student's selections achieving value
}

// memoTable maps (student index, remaining capacities) states to their solved entry.
// States are bucketed by an xxh3 hash of their encoding and compared exactly inside a bucket
type memoTable struct {
	buckets map[uint64][]*memoEntry
	size    int
	buffer  []byte
}

func newMemoTable() *memoTable {
	return &memoTable{
		buckets: make(map[uint64][]*memoEntry),
	}
}

func (table *memoTable) hash(index int, caps []int) uint64 {
	table.buffer = binary.AppendUvarint(table.buffer[:0], uint64(index))
	for _, remaining := range caps {
		table.buffer = binary.AppendUvarint(table.buffer, uint64(remaining))
	}
	return xxh3.Hash(table.buffer)
}

func (table *memoTable) get(index int, caps []int) (*memoEntry, bool) {
	for _, entry := range table.buckets[table.hash(index, caps)] {
		if entry.index == index && slices.Equal(entry.caps, caps) {
			return entry, true
		}
	}
	return nil, false
}

// Stores a private copy of caps, so callers may keep mutating their slice
func (table *memoTable) put(index int, caps []int, value float64, choice int) {
	key := table.hash(index, caps)
	table.buckets[key] = append(table.buckets[key], &memoEntry{
		index:  index,
		caps:   slices.Clone(caps),
		value:  value,
		choice: choice,
	})
	table.size++
}

func (table *memoTable) Len() int {
	return table.size
}
