package hashing

import "github.com/lgbarn/pgn-endings-go/internal/chess"

// DuplicateDetector tracks game identifiers already seen in a run.
type DuplicateDetector struct {
	seen map[string]struct{}
	// maxCapacity of 0 means unlimited.
	maxCapacity    int
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity; once full, new identifiers are
// no longer remembered but lookups still work.
func NewDuplicateDetector(maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		seen:        make(map[string]struct{}),
		maxCapacity: maxCapacity,
	}
}

// CheckAndAdd checks if a game is a duplicate and records its identifier.
// Returns true if the game is a duplicate.
func (d *DuplicateDetector) CheckAndAdd(rec *chess.GameRecord) bool {
	return d.CheckAndAddID(rec.ID)
}

// CheckAndAddID is CheckAndAdd for a bare identifier.
func (d *DuplicateDetector) CheckAndAddID(id string) bool {
	if _, ok := d.seen[id]; ok {
		d.duplicateCount++
		return true
	}
	if !d.IsFull() {
		d.seen[id] = struct{}{}
	}
	return false
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games remembered.
func (d *DuplicateDetector) UniqueCount() int {
	return len(d.seen)
}

// IsFull returns true if the detector has reached its capacity limit.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && len(d.seen) >= d.maxCapacity
}
