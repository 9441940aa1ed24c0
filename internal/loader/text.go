package loader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/coursegrid/internal/curriculum"
)

// ParseText reads the line-oriented format: the first whitespace-separated
// token of a line is the course, the rest are its prerequisites. Blank lines
// and lines starting with '#' are ignored.
func ParseText(ctx context.Context, r io.Reader, name string, b *curriculum.Builder) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		addCourse(ctx, b, fmt.Sprintf("%s:%d", name, lineNo), fields[0], fields[1:])
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}
