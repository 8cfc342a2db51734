package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/Makepad-fr/tada/internal/model"
)

func TestVisible_CompletedWithRemainingCount(t *testing.T) {
	m, _ := newManager(t)
	a, _ := m.Add("a")
	b, _ := m.Add("b")
	m.Toggle(a.ID)

	items := m.Items()
	done := Visible(items, model.FilterCompleted)
	assert.Len(t, done, 1)
	assert.Equal(t, a.ID, done[0].ID)

	active := Visible(items, model.FilterActive)
	assert.Len(t, active, 1)
	assert.Equal(t, b.ID, active[0].ID)

	assert.Equal(t, items, Visible(items, model.FilterAll))
	assert.Equal(t, 1, RemainingCount(items), "count ignores the current filter")
}

func TestPartition(t *testing.T) {
	items := []model.Item{
		{ID: "1", Completed: true},
		{ID: "2"},
		{ID: "3", Completed: true},
		{ID: "4"},
	}
	active, done := Partition(items)
	assert.Equal(t, []model.Item{{ID: "2"}, {ID: "4"}}, active)
	assert.Equal(t, []model.Item{{ID: "1", Completed: true}, {ID: "3", Completed: true}}, done)
}

func TestVisible_Empty(t *testing.T) {
	assert.Empty(t, Visible(nil, model.FilterActive))
	assert.Zero(t, RemainingCount(nil))
}

func TestProp_FilterPartition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 50).Draw(t, "n")
		items := make([]model.Item, n)
		for i := range items {
			items[i] = model.Item{ID: model.NewID(), Completed: rapid.Bool().Draw(t, "c")}
		}

		active := Visible(items, model.FilterActive)
		done := Visible(items, model.FilterCompleted)
		all := Visible(items, model.FilterAll)

		ids := map[string]int{}
		for _, it := range active {
			ids[it.ID]++
		}
		for _, it := range done {
			ids[it.ID]++
		}
		if len(ids) != len(all) {
			t.Fatalf("union has %d ids, all has %d", len(ids), len(all))
		}
		for _, it := range all {
			if ids[it.ID] != 1 {
				t.Fatalf("id %s seen %d times across active and completed", it.ID, ids[it.ID])
			}
		}
		if RemainingCount(items) != len(active) {
			t.Fatalf("remaining %d != active %d", RemainingCount(items), len(active))
		}
	})
}
