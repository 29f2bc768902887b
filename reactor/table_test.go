// File: reactor/table_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableSlotReuse(t *testing.T) {
	var tbl table

	a := &entry{name: "a"}
	b := &entry{name: "b"}

	ida := tbl.add(a)
	idb := tbl.add(b)
	assert.NotEqual(t, ida, idb)
	assert.Equal(t, 2, tbl.count)

	assert.Same(t, a, tbl.remove(ida))
	assert.Nil(t, tbl.get(ida))
	assert.Equal(t, 1, tbl.count)

	// Freed slot is reused.
	c := &entry{name: "c"}
	idc := tbl.add(c)
	assert.Equal(t, ida, idc)
	assert.Same(t, c, tbl.get(idc))

	// Out-of-range and double-remove are harmless.
	assert.Nil(t, tbl.get(-1))
	assert.Nil(t, tbl.get(99))
	tbl.remove(idc)
	assert.Nil(t, tbl.remove(idc))
}

func TestTableEach(t *testing.T) {
	var tbl table
	tbl.add(&entry{name: "a"})
	id := tbl.add(&entry{name: "b"})
	tbl.add(&entry{name: "c"})
	tbl.remove(id)

	var seen []string
	tbl.each(func(e *entry) { seen = append(seen, e.name) })
	assert.ElementsMatch(t, []string{"a", "c"}, seen)
}
