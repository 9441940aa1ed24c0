package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/coursegrid/internal/planner"
)

// DefaultCapacity is the number of courses per semester used when none is given.
const DefaultCapacity = 5

// Config holds everything an App needs for one run.
type Config struct {
	// CurriculumPaths are files or directories to load.
	CurriculumPaths []string `validate:"required,min=1,dive,required"`
	// Capacities are the per-semester limits to schedule for; one schedule
	// is produced per entry.
	Capacities []int `validate:"required,min=1,dive,gt=0"`

	Output         string `validate:"oneof=text json"`
	ShowCurriculum bool

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// NewConfig validates cfg and returns a copy. A non-positive capacity is
// reported as planner.ErrInvalidCapacity.
func NewConfig(cfg Config) (*Config, error) {
	err := validate.Struct(cfg)
	if err == nil {
		return &cfg, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	msgs := make([]string, 0, len(verrs))
	badCapacity := false
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
		if strings.HasPrefix(fe.StructNamespace(), "Config.Capacities[") {
			badCapacity = true
		}
	}

	msg := "invalid configuration: " + strings.Join(msgs, "; ")
	if badCapacity {
		return nil, fmt.Errorf("%s: %w", msg, planner.ErrInvalidCapacity)
	}
	return nil, errors.New(msg)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s needs at least %s entry", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
