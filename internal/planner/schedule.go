package planner

import (
	"context"
	"fmt"

	"github.com/specialistvlad/coursegrid/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// Schedule places the courses of g into semesters of at most capacity
// courses. A curriculum that cannot be fully scheduled is not an error: the
// partial schedule is returned with the remainder in Result.Unschedulable.
//
// Errors are returned for a non-positive capacity, for a cancelled ctx
// (checked between rounds), and if g fails a lookup for one of its own
// courses.
func Schedule(ctx context.Context, g Curriculum, capacity int) (*Result, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	ctx = ctxlog.With(ctx, "capacity", capacity)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Schedule: starting.")

	taken := make(Set)
	result := &Result{Capacity: capacity, Semesters: [][]string{}}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		options, err := Options(g, taken)
		if err != nil {
			return nil, fmt.Errorf("curriculum lookup failed during scan: %w", err)
		}
		if len(options) == 0 {
			break
		}

		picked, err := Pick(options, capacity)
		if err != nil {
			return nil, err
		}
		result.Semesters = append(result.Semesters, picked)
		taken.Add(picked...)
		logger.Debug("Schedule: semester planned.",
			"semester", len(result.Semesters), "options", len(options), "picked", picked)
	}

	stuck, err := diagnose(g, taken)
	if err != nil {
		return nil, fmt.Errorf("curriculum lookup failed during diagnosis: %w", err)
	}
	result.Unschedulable = stuck

	if result.Complete() {
		logger.Debug("Schedule: all courses placed.", "semesters", len(result.Semesters), "courses", len(taken))
	} else {
		logger.Warn("Schedule: courses left unschedulable.",
			"semesters", len(result.Semesters), "scheduled", len(taken), "unschedulable", len(stuck))
	}
	return result, nil
}

// ScheduleAll runs one independent Schedule per capacity over the shared
// graph and returns the results in the order of capacities. The first error
// cancels the remaining runs.
func ScheduleAll(ctx context.Context, g Curriculum, capacities []int) ([]*Result, error) {
	for _, c := range capacities {
		if c <= 0 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, c)
		}
	}

	results := make([]*Result, len(capacities))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, c := range capacities {
		eg.Go(func() error {
			r, err := Schedule(egCtx, g, c)
			if err != nil {
				return fmt.Errorf("capacity %d: %w", c, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
