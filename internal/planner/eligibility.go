package planner

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrInvalidCapacity is returned when the per-semester capacity is not positive.
var ErrInvalidCapacity = errors.New("capacity must be greater than zero")

// Set is a set of course identifiers.
type Set map[string]struct{}

// NewSet returns a Set holding courses.
func NewSet(courses ...string) Set {
	s := make(Set, len(courses))
	for _, c := range courses {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether course is in s.
func (s Set) Contains(course string) bool {
	_, ok := s[course]
	return ok
}

// Add inserts courses into s.
func (s Set) Add(courses ...string) {
	for _, c := range courses {
		s[c] = struct{}{}
	}
}

// IsSatisfied reports whether every prerequisite is in taken. An empty
// prerequisite list is always satisfied.
func IsSatisfied(taken Set, prereqs []string) bool {
	for _, p := range prereqs {
		if !taken.Contains(p) {
			return false
		}
	}
	return true
}

// Options returns, sorted lexicographically, every course of g that is not in
// taken and whose prerequisites are all in taken.
func Options(g Curriculum, taken Set) ([]string, error) {
	var options []string
	for _, course := range g.Courses() {
		if taken.Contains(course) {
			continue
		}
		prereqs, err := g.Prerequisites(course)
		if err != nil {
			return nil, err
		}
		if IsSatisfied(taken, prereqs) {
			options = append(options, course)
		}
	}
	sort.Strings(options)
	return options, nil
}

// Pick selects the courses for one semester: all of options when they fit,
// otherwise the capacity lexicographically smallest ones.
func Pick(options []string, capacity int) ([]string, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	picked := slices.Clone(options)
	sort.Strings(picked)
	if len(picked) > capacity {
		picked = picked[:capacity]
	}
	return picked, nil
}
