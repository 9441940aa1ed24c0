package loader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/coursegrid/internal/curriculum"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclRoot decodes the top level of a curriculum HCL file.
type hclRoot struct {
	Courses []*hclCourse `hcl:"course,block"`
}

type hclCourse struct {
	ID            string         `hcl:"id,label"`
	Prerequisites hcl.Expression `hcl:"prerequisites,optional"`
}

// ParseHCL reads course blocks:
//
//	course "CS301" {
//	  prerequisites = ["CS102", "CS201"]
//	}
//
// The prerequisites attribute is optional and must be a list of strings.
// Expressions are evaluated without variables or functions.
func ParseHCL(ctx context.Context, r io.Reader, name string, b *curriculum.Builder) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	file, diags := hclparse.NewParser().ParseHCL(src, name)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", name, diags)
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", name, diags)
	}

	for _, c := range root.Courses {
		prereqs, err := decodePrerequisites(c.Prerequisites)
		if err != nil {
			return fmt.Errorf("course %q in %s: %w", c.ID, name, err)
		}
		addCourse(ctx, b, name, c.ID, prereqs)
	}
	return nil
}

func decodePrerequisites(expr hcl.Expression) ([]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("prerequisites must be a list of strings: %w", err)
	}
	if !listVal.IsWhollyKnown() {
		return nil, errors.New("prerequisites must be known at load time")
	}

	var prereqs []string
	if err := gocty.FromCtyValue(listVal, &prereqs); err != nil {
		return nil, fmt.Errorf("prerequisites must be a list of strings: %w", err)
	}
	return prereqs, nil
}
