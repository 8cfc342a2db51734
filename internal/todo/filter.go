package todo

import "github.com/Makepad-fr/tada/internal/model"

// Visible returns the items f selects, keeping their order. FilterAll
// returns items itself.
func Visible(items []model.Item, f model.Filter) []model.Item {
	switch f {
	case model.FilterActive:
		return where(items, false)
	case model.FilterCompleted:
		return where(items, true)
	default:
		return items
	}
}

// RemainingCount counts not-completed items in the whole collection.
func RemainingCount(items []model.Item) int {
	n := 0
	for _, it := range items {
		if !it.Completed {
			n++
		}
	}
	return n
}

// Partition splits items into active and completed, order preserved.
func Partition(items []model.Item) (active, completed []model.Item) {
	return where(items, false), where(items, true)
}

func where(items []model.Item, completed bool) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.Completed == completed {
			out = append(out, it)
		}
	}
	return out
}
