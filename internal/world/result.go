package world

import "sort"

// Result summarizes a level run.
type Result struct {
	Level   int
	Name    string
	Home    int
	Dead    int
	Spawned int
	Passed  bool
}

// Result returns the outcome so far. Passed is only meaningful once Done.
func (w *World) Result() Result {
	return Result{
		Level:   w.current.Number,
		Name:    w.current.Name,
		Home:    w.tally.home,
		Dead:    w.tally.dead,
		Spawned: w.spawned,
		Passed:  w.tally.home >= w.rules.PassHome,
	}
}

// Scores maps a level number to its best home count.
type Scores map[int]int

// Record keeps r.Home if it beats the stored best and reports whether it
// did.
func (s Scores) Record(r Result) bool {
	if best, ok := s[r.Level]; ok && best >= r.Home {
		return false
	}
	s[r.Level] = r.Home
	return true
}

// Total sums the per-level bests, substituting the live home count of the
// level in progress.
func (s Scores) Total(current Result) int {
	total := current.Home
	for lvl, best := range s {
		if lvl != current.Level {
			total += best
		}
	}
	return total
}

// Levels returns the recorded level numbers in order.
func (s Scores) Levels() []int {
	out := make([]int, 0, len(s))
	for lvl := range s {
		out = append(out, lvl)
	}
	sort.Ints(out)
	return out
}
