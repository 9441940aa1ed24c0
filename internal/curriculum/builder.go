package curriculum

import "slices"

// Builder accumulates courses before a Graph is frozen. It is not safe for
// concurrent use; loaders own one Builder per load.
type Builder struct {
	order   []string
	prereqs map[string][]string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{prereqs: make(map[string][]string)}
}

// Add registers course with the given prerequisites. Adding a course that is
// already present replaces its prerequisites but keeps its original position,
// and reports true so the caller can warn about the redefinition.
func (b *Builder) Add(course string, prereqs ...string) (replaced bool) {
	if _, replaced = b.prereqs[course]; !replaced {
		b.order = append(b.order, course)
	}
	b.prereqs[course] = slices.Clone(prereqs)
	return replaced
}

// Len returns the number of distinct courses added so far.
func (b *Builder) Len() int {
	return len(b.order)
}

// Build freezes the accumulated courses into a Graph. The Builder may keep
// being used afterwards without affecting the returned Graph.
func (b *Builder) Build() *Graph {
	g := &Graph{
		order:   slices.Clone(b.order),
		prereqs: make(map[string][]string, len(b.prereqs)),
	}
	for course, p := range b.prereqs {
		if p == nil {
			p = []string{}
		}
		g.prereqs[course] = slices.Clone(p)
	}
	return g
}
