package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/specialistvlad/coursegrid/internal/app"
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a validated Config, a
// flag telling the caller to exit cleanly (help was shown), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("coursegrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
coursegrid - plan courses into semesters that respect prerequisites.

Usage:
  coursegrid [options] [CURRICULUM_PATH ...]

Arguments:
  CURRICULUM_PATH
    A curriculum file (.txt, .curriculum, .hcl, .yaml, .yml) or a directory of them.

Options:
`)
		flagSet.PrintDefaults()
	}

	curriculumFlag := flagSet.String("curriculum", "", "Path to the curriculum file or directory.")
	cFlag := flagSet.String("c", "", "Path to the curriculum file or directory (shorthand).")
	capacityFlag := flagSet.String("capacity", strconv.Itoa(app.DefaultCapacity), "Maximum courses per semester. A comma-separated list produces one schedule per value.")
	nFlag := flagSet.String("n", "", "Maximum courses per semester (shorthand).")
	outputFlag := flagSet.String("output", "text", "Schedule output format. Options: 'text' or 'json'.")
	showFlag := flagSet.Bool("show", false, "Print the loaded curriculum before the schedule.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	var paths []string
	switch {
	case *curriculumFlag != "":
		paths = append(paths, *curriculumFlag)
	case *cFlag != "":
		paths = append(paths, *cFlag)
	}
	paths = append(paths, flagSet.Args()...)

	if len(paths) == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	rawCapacity := *capacityFlag
	if *nFlag != "" {
		rawCapacity = *nFlag
	}
	capacities, err := parseCapacities(rawCapacity)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	config, err := app.NewConfig(app.Config{
		CurriculumPaths: paths,
		Capacities:      capacities,
		Output:          strings.ToLower(*outputFlag),
		ShowCurriculum:  *showFlag,
		LogFormat:       strings.ToLower(*logFormatFlag),
		LogLevel:        strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, false, nil
}

// parseCapacities reads a comma-separated list of integers. Range checks are
// left to app.NewConfig.
func parseCapacities(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid capacity %q: must be an integer", part)
		}
		out = append(out, n)
	}
	return out, nil
}
