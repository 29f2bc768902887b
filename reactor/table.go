// File: reactor/table.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Slot table for socket registrations. Freed slots are reused so ids stay
// small and dense. Only the polling goroutine touches the table.

package reactor

type table struct {
	slots []*entry
	free  []int
	count int
}

// add stores e and returns its slot id.
func (t *table) add(e *entry) int {
	var id int
	if n := len(t.free); n > 0 {
		id = t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[id] = e
	} else {
		id = len(t.slots)
		t.slots = append(t.slots, e)
	}
	t.count++
	return id
}

// get returns the entry at id, or nil for empty or out-of-range slots.
func (t *table) get(id int) *entry {
	if id < 0 || id >= len(t.slots) {
		return nil
	}
	return t.slots[id]
}

// remove clears slot id and returns the entry that occupied it.
func (t *table) remove(id int) *entry {
	e := t.get(id)
	if e == nil {
		return nil
	}
	t.slots[id] = nil
	t.free = append(t.free, id)
	t.count--
	return e
}

// each visits every occupied slot.
func (t *table) each(fn func(*entry)) {
	for _, e := range t.slots {
		if e != nil {
			fn(e)
		}
	}
}
