// Package app wires the curriculum loader, the planner and the presenter
// into a single run. It is decoupled from any entrypoint; the CLI builds a
// Config and hands it to NewApp.
package app
