// Package loader reads curriculum definitions from disk into a
// curriculum.Graph. Three formats are understood, selected by file extension:
//
//   - .txt, .curriculum: one course per line, "COURSE PREREQ1 PREREQ2 ..."
//   - .hcl: course "ID" { prerequisites = ["A", "B"] } blocks
//   - .yaml, .yml: a "courses" list of {id, prerequisites} entries
//
// A path may name a single file or a directory; directories are walked and
// every file with a known extension is loaded, in lexical order, into the
// same graph.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/coursegrid/internal/ctxlog"
	"github.com/specialistvlad/coursegrid/internal/curriculum"
	"github.com/specialistvlad/coursegrid/internal/fsutil"
)

// ErrUnsupportedFormat is returned for an explicitly named file whose
// extension does not map to a known format.
var ErrUnsupportedFormat = errors.New("unsupported curriculum format")

// parseFunc reads one document from r into b. name is used in messages.
type parseFunc func(ctx context.Context, r io.Reader, name string, b *curriculum.Builder) error

var formats = map[string]parseFunc{
	".txt":        ParseText,
	".curriculum": ParseText,
	".hcl":        ParseHCL,
	".yaml":       ParseYAML,
	".yml":        ParseYAML,
}

// extensions returns the known file extensions in sorted order.
func extensions() []string {
	exts := make([]string, 0, len(formats))
	for ext := range formats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Loader loads curricula from the file system.
type Loader struct{}

// New returns a Loader.
func New() *Loader {
	return &Loader{}
}

// Load reads every curriculum file reachable from paths into one graph.
// Courses defined more than once keep the last definition.
func (l *Loader) Load(ctx context.Context, paths ...string) (*curriculum.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loader started.", "path_count", len(paths))

	files, err := findCurriculumFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no curriculum files found in %s", strings.Join(paths, ", "))
	}
	logger.Debug("Discovered curriculum files.", "count", len(files))

	b := curriculum.NewBuilder()
	for _, file := range files {
		if err := loadFile(ctx, file, b); err != nil {
			return nil, err
		}
		logger.Debug("Parsed curriculum file.", "file", file, "courses_so_far", b.Len())
	}

	g := b.Build()
	logger.Debug("Loading complete.", "courses", g.Len())
	return g, nil
}

func loadFile(ctx context.Context, path string, b *curriculum.Builder) error {
	parse, ok := formats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open curriculum file: %w", err)
	}
	defer f.Close()

	ctxlog.FromContext(ctx).Debug("Parsing curriculum file.", "file", path)
	return parse(ctx, f, path, b)
}

// findCurriculumFiles expands paths into a de-duplicated list of files.
// Explicit files are returned whatever their extension so that loadFile can
// reject them; directories only contribute files with a known extension.
func findCurriculumFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := fsutil.FindFilesByExtensions(path, extensions()...)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}

// addCourse registers a course and warns when it replaces an earlier one.
func addCourse(ctx context.Context, b *curriculum.Builder, source, course string, prereqs []string) {
	if b.Add(course, prereqs...) {
		ctxlog.FromContext(ctx).Warn("Duplicate course definition found, it will be overwritten.",
			"course", course, "source", source)
	}
}
