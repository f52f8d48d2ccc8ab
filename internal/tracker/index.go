package tracker

import "sort"

// Index maps a habit id to the set of dates it was completed on.
// The zero value is not usable; call NewIndex.
type Index struct {
	sets map[int]map[string]struct{}
}

func NewIndex() *Index {
	return &Index{sets: make(map[int]map[string]struct{})}
}

// Replace swaps the habit's whole set for dates. Duplicates collapse.
func (x *Index) Replace(habitID int, dates []string) {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	x.sets[habitID] = set
}

func (x *Index) Has(habitID int, date string) bool {
	_, ok := x.sets[habitID][date]
	return ok
}

func (x *Index) Add(habitID int, date string) {
	set, ok := x.sets[habitID]
	if !ok {
		set = make(map[string]struct{})
		x.sets[habitID] = set
	}
	set[date] = struct{}{}
}

func (x *Index) Remove(habitID int, date string) {
	delete(x.sets[habitID], date)
}

// Forget drops everything known about a habit.
func (x *Index) Forget(habitID int) {
	delete(x.sets, habitID)
}

// Dates returns the habit's dates in ascending order.
// YYYY-MM-DD sorts lexically in calendar order.
func (x *Index) Dates(habitID int) []string {
	set := x.sets[habitID]
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// HabitsOn lists, in ascending id order, the habits completed on date.
func (x *Index) HabitsOn(date string) []int {
	var ids []int
	for id, set := range x.sets {
		if _, ok := set[date]; ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func (x *Index) Clone() *Index {
	c := &Index{sets: make(map[int]map[string]struct{}, len(x.sets))}
	for id, set := range x.sets {
		cp := make(map[string]struct{}, len(set))
		for d := range set {
			cp[d] = struct{}{}
		}
		c.sets[id] = cp
	}
	return c
}
