// Package planner assigns the courses of a curriculum to semesters.
//
// Each round scans every course that has not been taken yet, keeps the ones
// whose prerequisites are all taken, and places at most `capacity` of them
// into the next semester. Candidates are ordered lexicographically so the
// same curriculum and capacity always produce the same schedule.
//
// Rounds stop when no course is eligible. Courses still outside the taken set
// at that point are unschedulable: they sit on a prerequisite cycle, refer to
// a course that does not exist, or wait on one of those. They are returned in
// Result.Unschedulable alongside the partial schedule rather than as an error.
//
// A run owns its taken set and schedule. The curriculum is only read, so one
// graph can back many concurrent runs (see ScheduleAll).
package planner
