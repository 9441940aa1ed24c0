package planner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/coursegrid/internal/ctxlog"
	"github.com/specialistvlad/coursegrid/internal/curriculum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_ExampleCurriculum(t *testing.T) {
	g := curriculum.FromMap(map[string][]string{
		"CS101": {},
		"CS102": {"CS101"},
		"CS201": {"CS101"},
		"CS301": {"CS102", "CS201"},
	})

	result, err := Schedule(context.Background(), g, 2)
	require.NoError(t, err)

	want := [][]string{{"CS101"}, {"CS102", "CS201"}, {"CS301"}}
	if diff := cmp.Diff(want, result.Semesters); diff != "" {
		t.Errorf("semesters mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, result.Complete())
	assert.Equal(t, 2, result.Capacity)
	assert.Equal(t, 4, result.Scheduled())
}

func TestSchedule_CapacityExceededRound(t *testing.T) {
	g := curriculum.FromMap(map[string][]string{
		"E": nil, "C": nil, "A": nil, "D": nil, "B": nil,
	})

	result, err := Schedule(context.Background(), g, 2)
	require.NoError(t, err)

	want := [][]string{{"A", "B"}, {"C", "D"}, {"E"}}
	if diff := cmp.Diff(want, result.Semesters); diff != "" {
		t.Errorf("semesters mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, result.Complete())
}

func TestSchedule_UnselectedOptionsRollOver(t *testing.T) {
	// B unlocks D; A and C stay eligible and compete with D next round.
	g := curriculum.FromMap(map[string][]string{
		"A": nil, "B": nil, "C": nil, "D": {"B"},
	})

	result, err := Schedule(context.Background(), g, 2)
	require.NoError(t, err)

	want := [][]string{{"A", "B"}, {"C", "D"}}
	if diff := cmp.Diff(want, result.Semesters); diff != "" {
		t.Errorf("semesters mismatch (-want +got):\n%s", diff)
	}
}

func TestSchedule_MutualPrerequisites(t *testing.T) {
	g := curriculum.FromMap(map[string][]string{
		"A": {"B"},
		"B": {"A"},
	})

	result, err := Schedule(context.Background(), g, 3)
	require.NoError(t, err)

	assert.Empty(t, result.Semesters)
	assert.False(t, result.Complete())
	want := []Stuck{
		{Course: "A", Reason: ReasonCycle, Missing: []string{"B"}},
		{Course: "B", Reason: ReasonCycle, Missing: []string{"A"}},
	}
	if diff := cmp.Diff(want, result.Unschedulable); diff != "" {
		t.Errorf("unschedulable mismatch (-want +got):\n%s", diff)
	}
}

func TestSchedule_SelfReference(t *testing.T) {
	g := curriculum.FromMap(map[string][]string{
		"A": {"A"},
		"B": nil,
	})

	result, err := Schedule(context.Background(), g, 1)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"B"}}, result.Semesters)
	require.Len(t, result.Unschedulable, 1)
	assert.Equal(t, Stuck{Course: "A", Reason: ReasonCycle, Missing: []string{"A"}}, result.Unschedulable[0])
}

func TestSchedule_DanglingReference(t *testing.T) {
	g := curriculum.FromMap(map[string][]string{
		"CS201": {"CS999"},
	})

	result, err := Schedule(context.Background(), g, 2)
	require.NoError(t, err)

	assert.Empty(t, result.Semesters)
	want := []Stuck{{Course: "CS201", Reason: ReasonUnknownPrerequisite, Missing: []string{"CS999"}}}
	if diff := cmp.Diff(want, result.Unschedulable); diff != "" {
		t.Errorf("unschedulable mismatch (-want +got):\n%s", diff)
	}
}

func TestSchedule_PartialWithBlockedDescendants(t *testing.T) {
	g := curriculum.FromMap(map[string][]string{
		"BASE": nil,
		"X":    {"BASE", "Y"},
		"Y":    {"X"},
		"Z":    {"Y"},
		"W":    {"GHOST", "BASE"},
		"V":    {"W"},
	})

	result, err := Schedule(context.Background(), g, 4)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"BASE"}}, result.Semesters)
	want := []Stuck{
		{Course: "V", Reason: ReasonBlocked, Missing: []string{"W"}},
		{Course: "W", Reason: ReasonUnknownPrerequisite, Missing: []string{"GHOST"}},
		{Course: "X", Reason: ReasonCycle, Missing: []string{"Y"}},
		{Course: "Y", Reason: ReasonCycle, Missing: []string{"X"}},
		{Course: "Z", Reason: ReasonBlocked, Missing: []string{"Y"}},
	}
	if diff := cmp.Diff(want, result.Unschedulable); diff != "" {
		t.Errorf("unschedulable mismatch (-want +got):\n%s", diff)
	}
}

func TestSchedule_EmptyCurriculum(t *testing.T) {
	result, err := Schedule(context.Background(), curriculum.NewBuilder().Build(), 3)
	require.NoError(t, err)
	assert.Empty(t, result.Semesters)
	assert.True(t, result.Complete())
}

func TestSchedule_InvalidCapacity(t *testing.T) {
	g := curriculum.FromMap(map[string][]string{"A": nil})
	for _, c := range []int{0, -3} {
		_, err := Schedule(context.Background(), g, c)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	}
}

func TestSchedule_CancelledContext(t *testing.T) {
	g := curriculum.FromMap(map[string][]string{"A": nil})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Schedule(ctx, g, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

// brokenCurriculum lists a course it cannot look up.
type brokenCurriculum struct{}

func (brokenCurriculum) Courses() []string { return []string{"ghost"} }
func (brokenCurriculum) Has(string) bool   { return true }
func (brokenCurriculum) Prerequisites(course string) ([]string, error) {
	return nil, fmt.Errorf("%w: %q", curriculum.ErrUnknownCourse, course)
}

func TestSchedule_LookupFailureIsAnError(t *testing.T) {
	_, err := Schedule(context.Background(), brokenCurriculum{}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, curriculum.ErrUnknownCourse))
}

// randomDAG returns a curriculum where course i only depends on courses < i.
func randomDAG(rng *rand.Rand, n int) map[string][]string {
	m := make(map[string][]string, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("C%03d", i)
		var prereqs []string
		for j := 0; j < i; j++ {
			if rng.Intn(4) == 0 {
				prereqs = append(prereqs, fmt.Sprintf("C%03d", j))
			}
		}
		m[id] = prereqs
	}
	return m
}

func TestSchedule_PropertiesOnRandomDAGs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 50; iter++ {
		m := randomDAG(rng, 1+rng.Intn(30))
		capacity := 1 + rng.Intn(5)
		g := curriculum.FromMap(m)

		result, err := Schedule(context.Background(), g, capacity)
		require.NoError(t, err)

		require.True(t, result.Complete(), "acyclic curriculum must be fully scheduled")
		require.Equal(t, g.Len(), result.Scheduled())

		semesterOf := make(map[string]int)
		for i, semester := range result.Semesters {
			require.NotEmpty(t, semester)
			require.LessOrEqual(t, len(semester), capacity, "semester %d exceeds capacity", i)
			for _, c := range semester {
				_, dup := semesterOf[c]
				require.False(t, dup, "course %s scheduled twice", c)
				semesterOf[c] = i
			}
		}

		for course, prereqs := range m {
			for _, p := range prereqs {
				assert.Less(t, semesterOf[p], semesterOf[course], "%s must precede %s", p, course)
			}
		}
	}
}

func TestSchedule_Deterministic(t *testing.T) {
	m := randomDAG(rand.New(rand.NewSource(7)), 25)

	first, err := Schedule(context.Background(), curriculum.FromMap(m), 3)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Schedule(context.Background(), curriculum.FromMap(m), 3)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestScheduleAll(t *testing.T) {
	g := curriculum.FromMap(map[string][]string{
		"A": nil, "B": nil, "C": nil, "D": {"A"},
	})

	results, err := ScheduleAll(context.Background(), g, []int{1, 2, 4})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, [][]string{{"A"}, {"B"}, {"C"}, {"D"}}, results[0].Semesters)
	assert.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, results[1].Semesters)
	assert.Equal(t, [][]string{{"A", "B", "C"}, {"D"}}, results[2].Semesters)
	for i, c := range []int{1, 2, 4} {
		assert.Equal(t, c, results[i].Capacity)
	}
}

func TestScheduleAll_InvalidCapacity(t *testing.T) {
	g := curriculum.FromMap(map[string][]string{"A": nil})
	_, err := ScheduleAll(context.Background(), g, []int{2, 0})
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

// chainCurriculum is a long prerequisite chain C0000 <- C0001 <- ... whose
// first lookup fails. It counts every lookup across all concurrent runs.
type chainCurriculum struct {
	courses []string
	index   map[string]int
	calls   atomic.Int64
	failed  atomic.Bool
}

func newChainCurriculum(n int) *chainCurriculum {
	c := &chainCurriculum{courses: make([]string, n), index: make(map[string]int, n)}
	for i := range c.courses {
		c.courses[i] = fmt.Sprintf("C%04d", i)
		c.index[c.courses[i]] = i
	}
	return c
}

func (c *chainCurriculum) Courses() []string { return c.courses }

func (c *chainCurriculum) Has(course string) bool {
	_, ok := c.index[course]
	return ok
}

func (c *chainCurriculum) Prerequisites(course string) ([]string, error) {
	c.calls.Add(1)
	if c.failed.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("%w: %q", curriculum.ErrUnknownCourse, course)
	}
	if i := c.index[course]; i > 0 {
		return []string{c.courses[i-1]}, nil
	}
	return nil, nil
}

func TestScheduleAll_FirstErrorCancelsOtherRuns(t *testing.T) {
	const n = 2000
	g := newChainCurriculum(n)

	results, err := ScheduleAll(context.Background(), g, []int{1, 1, 1, 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, curriculum.ErrUnknownCourse)
	assert.ErrorContains(t, err, "capacity 1:")
	assert.Nil(t, results)

	// An uncancelled run at capacity 1 needs n rounds and about n*n/2 lookups.
	// The surviving runs must stop at their next round boundary instead.
	oneFullRun := int64(n * (n + 1) / 2)
	assert.Less(t, g.calls.Load(), oneFullRun)
}

func TestScheduleAll_CancelledParentContext(t *testing.T) {
	g := curriculum.FromMap(map[string][]string{"A": nil, "B": {"A"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := ScheduleAll(ctx, g, []int{1, 2})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

// lockedBuffer serialises writes from concurrent runs.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func TestScheduleAll_LogsCarryCapacity(t *testing.T) {
	var logs lockedBuffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)
	g := curriculum.FromMap(map[string][]string{"A": nil, "B": nil})

	_, err := ScheduleAll(ctx, g, []int{1, 2})
	require.NoError(t, err)

	out := logs.buf.String()
	assert.Contains(t, out, `msg="Schedule: all courses placed." capacity=1 semesters=2`)
	assert.Contains(t, out, `msg="Schedule: all courses placed." capacity=2 semesters=1`)
}
