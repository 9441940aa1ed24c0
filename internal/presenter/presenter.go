// Package presenter renders planner results and curricula for humans and
// machines.
package presenter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/specialistvlad/coursegrid/internal/curriculum"
	"github.com/specialistvlad/coursegrid/internal/planner"
)

// Renderer writes one or more schedules to w.
type Renderer func(w io.Writer, results []*planner.Result) error

// ForFormat returns the renderer for "text" or "json".
func ForFormat(format string) (Renderer, error) {
	switch format {
	case "text":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	warning lipgloss.Style
}

// newStyles binds styles to w so colors are only emitted on terminals.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Underline(true),
		label:   r.NewStyle().Bold(true),
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

// Text prints each schedule as a numbered list of semesters followed by the
// courses that could not be scheduled, if any.
func Text(w io.Writer, results []*planner.Result) error {
	st := newStyles(w)
	var sb strings.Builder

	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s\n", st.title.Render(fmt.Sprintf("Schedule (at most %d per semester)", r.Capacity)))
		if len(r.Semesters) == 0 {
			sb.WriteString("  no courses could be scheduled\n")
		}
		for n, semester := range r.Semesters {
			label := st.label.Render(fmt.Sprintf("Semester %d:", n+1))
			fmt.Fprintf(&sb, "  %s %s\n", label, strings.Join(semester, ", "))
		}

		if r.Complete() {
			continue
		}
		fmt.Fprintf(&sb, "%s\n", st.warning.Render(fmt.Sprintf("Unschedulable courses (%d):", len(r.Unschedulable))))
		for _, s := range r.Unschedulable {
			fmt.Fprintf(&sb, "  %s (%s): missing %s\n", s.Course, s.Reason, strings.Join(s.Missing, ", "))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// JSON encodes a single result as an object and several results as an array.
func JSON(w io.Writer, results []*planner.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}

// Curriculum prints every course of g with its prerequisites, numbered in
// graph order.
func Curriculum(w io.Writer, g *curriculum.Graph) error {
	st := newStyles(w)
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", st.title.Render(fmt.Sprintf("Curriculum (%d courses)", g.Len())))
	for i, course := range g.Courses() {
		prereqs, err := g.Prerequisites(course)
		if err != nil {
			return err
		}
		// Course IDs are printed raw; lipgloss would expand tabs and pad lines.
		number := st.label.Render(fmt.Sprintf("%3d)", i+1))
		fmt.Fprintf(&sb, "%s %s: prerequisites => [%s]\n", number, course, strings.Join(prereqs, ", "))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
