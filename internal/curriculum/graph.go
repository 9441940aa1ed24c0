package curriculum

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrUnknownCourse is returned when a query names a course that is not a key
// of the graph.
var ErrUnknownCourse = errors.New("unknown course")

// Graph is an immutable mapping from course identifier to its prerequisites.
// Course order is the order in which courses were first added.
type Graph struct {
	order   []string
	prereqs map[string][]string
}

// Courses returns every known course in insertion order.
func (g *Graph) Courses() []string {
	return slices.Clone(g.order)
}

// Prerequisites returns the prerequisites of course in their declared order.
// Asking for a course that is not a key returns ErrUnknownCourse.
func (g *Graph) Prerequisites(course string) ([]string, error) {
	p, ok := g.prereqs[course]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCourse, course)
	}
	return slices.Clone(p), nil
}

// Has reports whether course is a key of the graph.
func (g *Graph) Has(course string) bool {
	_, ok := g.prereqs[course]
	return ok
}

// Len returns the number of known courses.
func (g *Graph) Len() int {
	return len(g.order)
}

// Dangling maps each course that references unknown prerequisites to the
// sorted, de-duplicated list of those references.
func (g *Graph) Dangling() map[string][]string {
	out := make(map[string][]string)
	for _, course := range g.order {
		seen := make(map[string]struct{})
		for _, p := range g.prereqs[course] {
			if g.Has(p) {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out[course] = append(out[course], p)
		}
		if refs, ok := out[course]; ok {
			sort.Strings(refs)
		}
	}
	return out
}

// FromMap builds a Graph from m. Map iteration order is not stable, so
// courses are inserted in lexicographic order.
func FromMap(m map[string][]string) *Graph {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := NewBuilder()
	for _, k := range keys {
		b.Add(k, m[k]...)
	}
	return b.Build()
}
