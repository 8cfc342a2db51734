package model

import (
	"fmt"
	"strings"
)

// Filter selects which items the view shows. Never persisted.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// Filters lists the selectors in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Label is the capitalized tab caption ("All", "Active", "Completed").
func (f Filter) Label() string {
	s := f.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Next cycles forward through Filters, wrapping around.
func (f Filter) Next() Filter { return Filters[(int(f)+1)%len(Filters)] }

// Prev cycles backward through Filters, wrapping around.
func (f Filter) Prev() Filter {
	return Filters[(int(f)+len(Filters)-1)%len(Filters)]
}

func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q (want all, active or completed)", s)
}
