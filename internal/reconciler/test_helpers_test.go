package reconciler

import (
	"context"
	"fmt"
	"sync"

	"github.com/esanchezm/megaverse/internal/megaverse"
)

// =============================================================================
// fakeMegaverse - in-memory map and object clients recording every call
// =============================================================================

// call is one mutating call observed by the fake, e.g. "polyanet.set(0,1)".
type call string

func setCall(kind string, row, col int, attr string) call {
	if attr == "" {
		return call(fmt.Sprintf("%s.set(%d,%d)", kind, row, col))
	}
	return call(fmt.Sprintf("%s.set(%d,%d,%s)", kind, row, col, attr))
}

func cleanCall(kind string, row, col int) call {
	return call(fmt.Sprintf("%s.clean(%d,%d)", kind, row, col))
}

// fakeMegaverse implements all reconciler client interfaces.
type fakeMegaverse struct {
	mu sync.Mutex

	current megaverse.Grid
	goal    megaverse.GoalGrid

	// Configurable errors for testing error paths
	StatusError error
	GoalError   error
	// FailOn makes the matching call return the error.
	FailOn map[call]error

	calls []call
}

func newFakeMegaverse(current megaverse.Grid, goal megaverse.GoalGrid) *fakeMegaverse {
	return &fakeMegaverse{
		current: current,
		goal:    goal,
		FailOn:  make(map[call]error),
	}
}

func (f *fakeMegaverse) clients() Clients {
	return Clients{
		Map:       f,
		Polyanets: fakePolyanets{f},
		Soloons:   fakeSoloons{f},
		Comeths:   fakeComeths{f},
	}
}

func (f *fakeMegaverse) record(c call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.FailOn[c]
}

func (f *fakeMegaverse) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeMegaverse) GetStatus(ctx context.Context) (megaverse.Grid, error) {
	if f.StatusError != nil {
		return nil, f.StatusError
	}
	return f.current, nil
}

func (f *fakeMegaverse) GetGoal(ctx context.Context) (megaverse.GoalGrid, error) {
	if f.GoalError != nil {
		return nil, f.GoalError
	}
	return f.goal, nil
}

type fakePolyanets struct{ f *fakeMegaverse }

func (p fakePolyanets) Set(ctx context.Context, row, col int) error {
	return p.f.record(setCall("polyanet", row, col, ""))
}

func (p fakePolyanets) Clean(ctx context.Context, row, col int) error {
	return p.f.record(cleanCall("polyanet", row, col))
}

type fakeSoloons struct{ f *fakeMegaverse }

func (s fakeSoloons) Set(ctx context.Context, row, col int, color megaverse.Color) error {
	return s.f.record(setCall("soloon", row, col, string(color)))
}

func (s fakeSoloons) Clean(ctx context.Context, row, col int) error {
	return s.f.record(cleanCall("soloon", row, col))
}

type fakeComeths struct{ f *fakeMegaverse }

func (c fakeComeths) Set(ctx context.Context, row, col int, direction megaverse.Direction) error {
	return c.f.record(setCall("cometh", row, col, string(direction)))
}

func (c fakeComeths) Clean(ctx context.Context, row, col int) error {
	return c.f.record(cleanCall("cometh", row, col))
}

// spaces returns a rows x cols grid of empty cells.
func spaces(rows, cols int) megaverse.Grid {
	g := make(megaverse.Grid, rows)
	for i := range g {
		g[i] = make([]megaverse.Cell, cols)
	}
	return g
}
