package reconciler

import (
	"context"
	"fmt"
	"time"

	"github.com/esanchezm/megaverse/internal/megaverse"
)

// MapReader fetches the live and goal maps.
type MapReader interface {
	GetStatus(ctx context.Context) (megaverse.Grid, error)
	GetGoal(ctx context.Context) (megaverse.GoalGrid, error)
}

// PolyanetWriter creates and deletes polyanets.
type PolyanetWriter interface {
	Set(ctx context.Context, row, col int) error
	Clean(ctx context.Context, row, col int) error
}

// SoloonWriter creates and deletes soloons.
type SoloonWriter interface {
	Set(ctx context.Context, row, col int, color megaverse.Color) error
	Clean(ctx context.Context, row, col int) error
}

// ComethWriter creates and deletes comeths.
type ComethWriter interface {
	Set(ctx context.Context, row, col int, direction megaverse.Direction) error
	Clean(ctx context.Context, row, col int) error
}

// Clients groups the collaborators a Reconciler drives.
type Clients struct {
	Map       MapReader
	Polyanets PolyanetWriter
	Soloons   SoloonWriter
	Comeths   ComethWriter
}

// ClientsFrom wires the megaverse API clients.
func ClientsFrom(c *megaverse.Client) Clients {
	return Clients{
		Map:       c.Map(),
		Polyanets: c.Polyanets(),
		Soloons:   c.Soloons(),
		Comeths:   c.Comeths(),
	}
}

func (c Clients) validate() error {
	switch {
	case c.Map == nil:
		return fmt.Errorf("map client is required")
	case c.Polyanets == nil:
		return fmt.Errorf("polyanet client is required")
	case c.Soloons == nil:
		return fmt.Errorf("soloon client is required")
	case c.Comeths == nil:
		return fmt.Errorf("cometh client is required")
	}
	return nil
}

// ActionType says what a cell needs.
type ActionType string

const (
	// ActionClean empties the cell by cleaning all three object kinds.
	ActionClean ActionType = "Clean"

	// ActionSet creates the goal object in the cell.
	ActionSet ActionType = "Set"

	// ActionSkipUnknown marks a goal token that names no object kind.
	// No call is issued for it.
	ActionSkipUnknown ActionType = "SkipUnknown"
)

// Action is one planned change at a map position.
type Action struct {
	Type   ActionType `json:"type"`
	Row    int        `json:"row"`
	Column int        `json:"column"`

	// Current is what the live map holds.
	Current megaverse.Cell `json:"-"`

	// Goal is the parsed goal cell; zero for ActionSkipUnknown.
	Goal megaverse.Cell `json:"-"`

	// Token is the goal token as received.
	Token string `json:"goal"`

	// From is the current cell rendered as a goal token.
	From string `json:"current"`
}

// Calls returns how many API calls executing the action issues.
func (a Action) Calls() int {
	switch a.Type {
	case ActionClean:
		return 3
	case ActionSet:
		return 1
	default:
		return 0
	}
}

func (a Action) String() string {
	switch a.Type {
	case ActionClean:
		return fmt.Sprintf("clean (%d, %d): %s -> space", a.Row, a.Column, a.Current)
	case ActionSet:
		return fmt.Sprintf("set (%d, %d): %s -> %s", a.Row, a.Column, a.Current, a.Goal)
	default:
		return fmt.Sprintf("skip (%d, %d): unknown goal token %q", a.Row, a.Column, a.Token)
	}
}

// Plan is the ordered (row-major) list of changes for one run.
type Plan struct {
	CandidateID string    `json:"candidateId,omitempty"`
	Rows        int       `json:"rows"`
	Columns     int       `json:"columns"`
	Reconciled  int       `json:"reconciled"`
	Actions     []Action  `json:"actions"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Calls returns the total API calls executing the plan issues.
func (p *Plan) Calls() int {
	n := 0
	for _, a := range p.Actions {
		n += a.Calls()
	}
	return n
}

// Summary reports what a run did.
type Summary struct {
	RunID       string        `json:"runId"`
	CandidateID string        `json:"candidateId,omitempty"`
	Reconciled  int           `json:"reconciled"`
	Sets        int           `json:"sets"`
	Cleans      int           `json:"cleans"`
	Unknown     int           `json:"unknown"`
	Calls       int           `json:"calls"`
	Duration    time.Duration `json:"duration"`
}
