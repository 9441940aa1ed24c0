package planner

// Curriculum is the read-only view of a prerequisite graph that the planner
// needs. *curriculum.Graph satisfies it.
type Curriculum interface {
	// Courses returns every known course.
	Courses() []string

	// Prerequisites returns the prerequisites of a known course. It returns
	// an error for a course that is not a key of the graph.
	Prerequisites(course string) ([]string, error)

	// Has reports whether course is a key of the graph.
	Has(course string) bool
}
