package engine

// IDAllocator hands out unique ids within one circuit. Each engine owns its
// allocators; there is no process-wide counter, so independent sessions never
// share an id sequence. The cursor round-trips through CircuitState.
type IDAllocator struct {
	next int
}

// NewIDAllocator creates an allocator whose next id is start. A start below 1
// is clamped to 1.
func NewIDAllocator(start int) *IDAllocator {
	if start < 1 {
		start = 1
	}
	return &IDAllocator{next: start}
}

// Next returns the next id and advances the cursor.
func (a *IDAllocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Peek returns the id Next would return, without advancing.
func (a *IDAllocator) Peek() int {
	return a.next
}
