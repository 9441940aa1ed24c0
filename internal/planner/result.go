package planner

import (
	"sort"
)

// Reason explains why a course could not be scheduled.
type Reason string

const (
	// ReasonUnknownPrerequisite marks a course that names a prerequisite
	// which is not a course of the curriculum.
	ReasonUnknownPrerequisite Reason = "unknown-prerequisite"
	// ReasonCycle marks a course that lies on a prerequisite cycle.
	ReasonCycle Reason = "cycle"
	// ReasonBlocked marks a course waiting on another unschedulable course.
	ReasonBlocked Reason = "blocked"
)

// Stuck describes one course left out of the schedule.
type Stuck struct {
	Course string `json:"course"`
	Reason Reason `json:"reason"`

	// Missing lists the prerequisites that were never taken, sorted.
	Missing []string `json:"missing"`
}

// Result is the outcome of one scheduling run.
type Result struct {
	Capacity      int        `json:"capacity"`
	Semesters     [][]string `json:"semesters"`
	Unschedulable []Stuck    `json:"unschedulable"`
}

// Complete reports whether every course was scheduled.
func (r *Result) Complete() bool {
	return len(r.Unschedulable) == 0
}

// Scheduled returns the number of courses placed in a semester.
func (r *Result) Scheduled() int {
	n := 0
	for _, s := range r.Semesters {
		n += len(s)
	}
	return n
}

// diagnose explains every course of g that is not in taken. A course with an
// unknown prerequisite is reported as such even if it also sits on a cycle.
func diagnose(g Curriculum, taken Set) ([]Stuck, error) {
	remaining := make(map[string][]string)
	for _, course := range g.Courses() {
		if taken.Contains(course) {
			continue
		}
		prereqs, err := g.Prerequisites(course)
		if err != nil {
			return nil, err
		}
		remaining[course] = missingFrom(taken, prereqs)
	}

	stuck := make([]Stuck, 0, len(remaining))
	for course, missing := range remaining {
		s := Stuck{Course: course, Reason: ReasonBlocked, Missing: missing}
		switch {
		case hasUnknown(g, missing):
			s.Reason = ReasonUnknownPrerequisite
		case onCycle(course, remaining):
			s.Reason = ReasonCycle
		}
		stuck = append(stuck, s)
	}
	sort.Slice(stuck, func(i, j int) bool { return stuck[i].Course < stuck[j].Course })
	return stuck, nil
}

func missingFrom(taken Set, prereqs []string) []string {
	seen := make(Set)
	missing := []string{}
	for _, p := range prereqs {
		if taken.Contains(p) || seen.Contains(p) {
			continue
		}
		seen.Add(p)
		missing = append(missing, p)
	}
	sort.Strings(missing)
	return missing
}

func hasUnknown(g Curriculum, prereqs []string) bool {
	for _, p := range prereqs {
		if !g.Has(p) {
			return true
		}
	}
	return false
}

// onCycle reports whether start can reach itself by following missing
// prerequisites through the remaining courses.
func onCycle(start string, remaining map[string][]string) bool {
	visited := make(Set)
	stack := append([]string(nil), remaining[start]...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == start {
			return true
		}
		if visited.Contains(n) {
			continue
		}
		visited.Add(n)
		stack = append(stack, remaining[n]...)
	}
	return false
}
