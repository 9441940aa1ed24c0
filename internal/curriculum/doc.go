// Package curriculum holds the prerequisite graph that the planner schedules.
//
// # Lifecycle
//
// A Graph is populated once through a Builder (normally by a loader) and is
// read-only afterwards. Because nothing mutates a built Graph, it can be
// shared by any number of concurrent scheduling runs without locking.
//
// # References
//
// Every course that appears as a key is "known". A prerequisite token is not
// required to be known: a reference to a course that never appears as a key
// is kept as-is and reported by Dangling. Such courses can never become
// eligible, and the planner reports them in its unschedulable remainder.
//
// Identifiers are opaque and case-sensitive; no normalization is applied.
package curriculum
