// Package grid implements the spatial collision index used by simulation
// logic to resolve per-tick interactions. Positions are exact discrete
// grid cells; there is no hierarchical partitioning because the domain is
// a bounded grid and bucket traversal order must stay deterministic.
package grid

import "github.com/vovakirdan/arcade-sim/internal/core"

// Source is any simulation entity that can occupy grid positions.
// The identifier must be stable for the lifetime of the entity.
type Source interface {
	SourceID() string
}

// Index is a point-keyed multi-map from grid position to the sources
// occupying it. A source may occupy any number of positions at once.
// Query results preserve insertion order per bucket so that callers can
// tie-break deterministically.
type Index struct {
	buckets  map[core.Point][]Source
	bySource map[string][]core.Point
}

// NewIndex creates an empty collision index.
func NewIndex() *Index {
	return &Index{
		buckets:  make(map[core.Point][]Source),
		bySource: make(map[string][]core.Point),
	}
}

// Add registers the source at the given position.
// Adding the same (position, source) pair twice is a no-op.
func (ix *Index) Add(pos core.Point, src Source) {
	id := src.SourceID()
	for _, s := range ix.buckets[pos] {
		if s.SourceID() == id {
			return
		}
	}
	ix.buckets[pos] = append(ix.buckets[pos], src)
	ix.bySource[id] = append(ix.bySource[id], pos)
}

// Remove unregisters the source from the given position.
// Removing a pair that is not present is a no-op.
func (ix *Index) Remove(pos core.Point, src Source) {
	id := src.SourceID()

	bucket := ix.buckets[pos]
	for i, s := range bucket {
		if s.SourceID() == id {
			ix.buckets[pos] = append(bucket[:i:i], bucket[i+1:]...)
			if len(ix.buckets[pos]) == 0 {
				delete(ix.buckets, pos)
			}
			break
		}
	}

	positions := ix.bySource[id]
	for i, p := range positions {
		if p == pos {
			ix.bySource[id] = append(positions[:i:i], positions[i+1:]...)
			if len(ix.bySource[id]) == 0 {
				delete(ix.bySource, id)
			}
			break
		}
	}
}

// RemoveSource unregisters the source from every position it occupies.
// Runs in O(occupied positions).
func (ix *Index) RemoveSource(src Source) {
	id := src.SourceID()
	for _, pos := range ix.bySource[id] {
		bucket := ix.buckets[pos]
		for i, s := range bucket {
			if s.SourceID() == id {
				ix.buckets[pos] = append(bucket[:i:i], bucket[i+1:]...)
				if len(ix.buckets[pos]) == 0 {
					delete(ix.buckets, pos)
				}
				break
			}
		}
	}
	delete(ix.bySource, id)
}

// ContainsPoint returns all sources at the exact position, in the order
// they were added to that cell. The returned slice is a copy.
func (ix *Index) ContainsPoint(pos core.Point) []Source {
	bucket := ix.buckets[pos]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]Source, len(bucket))
	copy(out, bucket)
	return out
}

// Positions returns every position the source currently occupies, in the
// order they were added. The returned slice is a copy.
func (ix *Index) Positions(src Source) []core.Point {
	positions := ix.bySource[src.SourceID()]
	if len(positions) == 0 {
		return nil
	}
	out := make([]core.Point, len(positions))
	copy(out, positions)
	return out
}

// Clear removes every entry from the index.
func (ix *Index) Clear() {
	ix.buckets = make(map[core.Point][]Source)
	ix.bySource = make(map[string][]core.Point)
}
