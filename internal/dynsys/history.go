package dynsys

// History is the shared snapshot record embedded by every system. It is
// append-only: entries are deep copies taken at save time, so later
// mutation of the live state never alters a stored snapshot.
type History struct {
	entries []State
}

// SaveState appends an independent copy of s to the record.
func (h *History) SaveState(s State) {
	h.entries = append(h.entries, s.Clone())
}

// HistoryLen reports the number of snapshots recorded so far.
func (h *History) HistoryLen() int { return len(h.entries) }

// Snapshot returns a copy of the i-th recorded snapshot. It panics if i
// is out of range, matching slice indexing.
func (h *History) Snapshot(i int) State {
	return h.entries[i].Clone()
}
