package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/coursegrid/internal/ctxlog"
	"github.com/specialistvlad/coursegrid/internal/curriculum"
	"github.com/specialistvlad/coursegrid/internal/planner"
	"github.com/specialistvlad/coursegrid/internal/presenter"
)

// ErrIncompleteSchedule is returned by Run when at least one schedule left
// courses out. The partial schedule has already been written by then.
var ErrIncompleteSchedule = errors.New("curriculum could not be fully scheduled")

// Loader turns paths into a curriculum graph. *loader.Loader implements it.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*curriculum.Graph, error)
}

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader Loader
}

// NewApp returns an App that renders schedules to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}

// Run loads the curriculum, schedules it once per configured capacity and
// renders the results.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger.With("run_id", uuid.NewString()))
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run started.", "paths", a.config.CurriculumPaths, "capacities", a.config.Capacities)

	render, err := presenter.ForFormat(a.config.Output)
	if err != nil {
		return err
	}

	g, err := a.loader.Load(ctx, a.config.CurriculumPaths...)
	if err != nil {
		return fmt.Errorf("failed to load curriculum: %w", err)
	}
	logger.Info("Curriculum loaded.", "courses", g.Len())
	dangling := g.Dangling()
	for _, course := range g.Courses() {
		if refs, ok := dangling[course]; ok {
			logger.Warn("Course references unknown prerequisites.", "course", course, "unknown", refs)
		}
	}

	if a.config.ShowCurriculum {
		if err := presenter.Curriculum(a.outW, g); err != nil {
			return fmt.Errorf("failed to print curriculum: %w", err)
		}
	}

	results, err := planner.ScheduleAll(ctx, g, a.config.Capacities)
	if err != nil {
		return fmt.Errorf("scheduling failed: %w", err)
	}

	if err := render(a.outW, results); err != nil {
		return fmt.Errorf("failed to render schedule: %w", err)
	}

	for _, r := range results {
		logger.Info("Schedule built.", "capacity", r.Capacity, "semesters", len(r.Semesters),
			"scheduled", r.Scheduled(), "unschedulable", len(r.Unschedulable))
	}
	for _, r := range results {
		if !r.Complete() {
			return fmt.Errorf("%w: %d of %d courses left out at capacity %d",
				ErrIncompleteSchedule, len(r.Unschedulable), g.Len(), r.Capacity)
		}
	}
	logger.Debug("App.Run finished.")
	return nil
}
