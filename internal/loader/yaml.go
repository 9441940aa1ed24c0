package loader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/coursegrid/internal/curriculum"
	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Courses []yamlCourse `yaml:"courses"`
}

type yamlCourse struct {
	ID            string   `yaml:"id"`
	Prerequisites []string `yaml:"prerequisites,omitempty"`
}

// ParseYAML reads a document of the form:
//
//	courses:
//	  - id: CS101
//	  - id: CS102
//	    prerequisites: [CS101]
//
// Every document of a multi-document stream is read. Unknown keys are
// rejected. An empty stream yields no courses.
func ParseYAML(ctx context.Context, r io.Reader, name string, b *curriculum.Builder) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	for docNo := 1; ; docNo++ {
		var doc yamlDocument
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to decode YAML file %s (document %d): %w", name, docNo, err)
		}

		for i, c := range doc.Courses {
			if c.ID == "" {
				return fmt.Errorf("course #%d of document %d in %s: id is required", i+1, docNo, name)
			}
			addCourse(ctx, b, fmt.Sprintf("%s#%d", name, docNo), c.ID, c.Prerequisites)
		}
	}
}
