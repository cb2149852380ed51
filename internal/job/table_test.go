package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_IDsStrictlyIncrease(t *testing.T) {
	tbl := NewTable()

	a := tbl.Add(nil, "first", Status{State: Running})
	b := tbl.Add(nil, "second", Status{State: Running})
	c := tbl.Add(nil, "third", Status{State: Running})

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, 3, c.ID)
}

func TestTable_IDsNeverReused(t *testing.T) {
	tbl := NewTable()

	a := tbl.Add(nil, "a", Status{State: Running})
	b := tbl.Add(nil, "b", Status{State: Running})
	tbl.Remove(a.ID)
	tbl.Remove(b.ID)
	require.Equal(t, 0, tbl.Len())

	c := tbl.Add(nil, "c", Status{State: Running})
	assert.Greater(t, c.ID, b.ID)
}

func TestTable_JobsAscendingByID(t *testing.T) {
	tbl := NewTable()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		tbl.Add(nil, name, Status{State: Running})
	}
	tbl.Remove(3)

	var ids []int
	for _, j := range tbl.Jobs() {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []int{1, 2, 4, 5}, ids)
}

func TestTable_Latest(t *testing.T) {
	tbl := NewTable()
	assert.Nil(t, tbl.Latest())

	tbl.Add(nil, "a", Status{State: Running})
	b := tbl.Add(nil, "b", Status{State: Running})
	assert.Equal(t, b.ID, tbl.Latest().ID)

	tbl.Remove(b.ID)
	assert.Equal(t, 1, tbl.Latest().ID)
}

func TestTable_LatestStopped(t *testing.T) {
	tbl := NewTable()
	assert.Nil(t, tbl.LatestStopped())

	a := tbl.Add(nil, "a", Status{State: Stopped})
	tbl.Add(nil, "b", Status{State: Running})
	assert.Equal(t, a.ID, tbl.LatestStopped().ID)

	c := tbl.Add(nil, "c", Status{State: Stopped})
	assert.Equal(t, c.ID, tbl.LatestStopped().ID)
}

func TestTable_RestoreKeepsID(t *testing.T) {
	tbl := NewTable()
	a := tbl.Add(nil, "a", Status{State: Running})
	tbl.Remove(a.ID)

	tbl.Restore(a)
	got, ok := tbl.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, a.ID, got.ID)

	// Restoring must not disturb the id sequence.
	b := tbl.Add(nil, "b", Status{State: Running})
	assert.Equal(t, a.ID+1, b.ID)
}

func TestTable_GetMissing(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Get(7)
	assert.False(t, ok)
}
