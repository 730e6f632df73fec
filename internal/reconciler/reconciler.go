package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/esanchezm/megaverse/internal/megaverse"
	"github.com/esanchezm/megaverse/pkg/logging"
)

const subsystem = "Reconciler"

// Reconciler drives the live map towards the goal map, one cell at a time
// in row-major order.
type Reconciler struct {
	clients     Clients
	candidateID string
	metrics     *ReconcilerMetrics
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithCandidateID labels plans, summaries and logs with the candidate.
func WithCandidateID(candidateID string) Option {
	return func(r *Reconciler) {
		r.candidateID = candidateID
	}
}

// WithMetrics records every call into m.
func WithMetrics(m *ReconcilerMetrics) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// New creates a Reconciler over the given clients.
func New(clients Clients, opts ...Option) (*Reconciler, error) {
	if err := clients.validate(); err != nil {
		return nil, err
	}

	r := &Reconciler{clients: clients}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = NewReconcilerMetrics()
	}
	return r, nil
}

// Metrics returns the metrics the reconciler records into.
func (r *Reconciler) Metrics() *ReconcilerMetrics {
	return r.metrics
}

// Reconcile plans and executes a full run. It stops at the first failing
// call; calls already made stay applied and a new run converges from there.
func (r *Reconciler) Reconcile(ctx context.Context) (*Summary, error) {
	plan, err := r.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return r.Execute(ctx, plan)
}

// Plan fetches both maps and computes the changes without applying them.
func (r *Reconciler) Plan(ctx context.Context) (*Plan, error) {
	current, err := r.clients.Map.GetStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current map: %w", err)
	}

	goal, err := r.clients.Map.GetGoal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goal map: %w", err)
	}
	logging.Debug(subsystem, "Raw goal map: %v", goal)

	plan, err := BuildPlan(current, goal)
	if err != nil {
		return nil, err
	}
	plan.CandidateID = r.candidateID
	return plan, nil
}

// BuildPlan diffs current against goal. It fails on a shape mismatch or on
// a goal token with an invalid color or direction; tokens naming no known
// kind become ActionSkipUnknown entries.
func BuildPlan(current megaverse.Grid, goal megaverse.GoalGrid) (*Plan, error) {
	if !current.Shape().Equal(goal.Shape()) {
		return nil, fmt.Errorf("%w: current is %s, goal is %s",
			ErrDimensionMismatch, current.Shape(), goal.Shape())
	}

	plan := &Plan{
		Rows:      len(goal),
		CreatedAt: time.Now(),
	}
	if len(goal) > 0 {
		plan.Columns = len(goal[0])
	}

	for row := range goal {
		for col, token := range goal[row] {
			have := current[row][col]

			want, err := megaverse.ParseCell(token)
			if errors.Is(err, megaverse.ErrUnknownToken) {
				plan.Actions = append(plan.Actions, Action{
					Type:    ActionSkipUnknown,
					Row:     row,
					Column:  col,
					Current: have,
					Token:   token,
					From:    have.Token(),
				})
				continue
			}
			if err != nil {
				return nil, &CellError{Row: row, Column: col, Err: err}
			}

			if have == want {
				logging.Debug(subsystem, "Map already reconciled at %d, %d", row, col)
				plan.Reconciled++
				continue
			}

			action := Action{
				Type:    ActionSet,
				Row:     row,
				Column:  col,
				Current: have,
				Goal:    want,
				Token:   token,
				From:    have.Token(),
			}
			if want.Kind == megaverse.KindSpace {
				action.Type = ActionClean
			}
			plan.Actions = append(plan.Actions, action)
		}
	}

	return plan, nil
}

// Execute applies plan in order.
func (r *Reconciler) Execute(ctx context.Context, plan *Plan) (*Summary, error) {
	start := time.Now()
	summary := &Summary{
		RunID:       uuid.New().String(),
		CandidateID: r.candidateID,
		Reconciled:  plan.Reconciled,
	}

	logging.Info(subsystem, "Reconciling map for candidate %s (run %s): %d change(s), %d cell(s) already reconciled",
		r.candidateID, summary.RunID, len(plan.Actions), plan.Reconciled)

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch action.Type {
		case ActionSkipUnknown:
			logging.Error(subsystem, nil, "Unknown map value %q at %d, %d, skipping", action.Token, action.Row, action.Column)
			r.metrics.RecordSkip(action.Row, action.Column, action.Token)
			summary.Unknown++

		case ActionClean:
			logging.Info(subsystem, "Cleaning %d, %d", action.Row, action.Column)
			n, err := r.clean(ctx, action.Row, action.Column)
			summary.Calls += n
			if err != nil {
				return nil, err
			}
			summary.Cleans++

		case ActionSet:
			logging.Info(subsystem, "Setting %s at %d, %d", action.Goal, action.Row, action.Column)
			summary.Calls++
			if err := r.set(ctx, action.Row, action.Column, action.Goal); err != nil {
				return nil, err
			}
			summary.Sets++

		default:
			return nil, fmt.Errorf("unsupported action %q at (%d, %d)", action.Type, action.Row, action.Column)
		}
	}

	summary.Duration = time.Since(start)
	logging.Info(subsystem, "Run %s finished in %s: %d set(s), %d clean(s), %d unknown, %d API call(s)",
		summary.RunID, summary.Duration.Round(time.Millisecond), summary.Sets, summary.Cleans, summary.Unknown, summary.Calls)
	return summary, nil
}

// clean empties a cell. The live map does not say reliably which kind is
// there, so every kind is cleaned. It returns the number of calls issued.
//
// TODO: issue a single Clean for the occupant's kind once the current map
// payload is confirmed to always carry the object type.
func (r *Reconciler) clean(ctx context.Context, row, col int) (int, error) {
	steps := []struct {
		kind  megaverse.Kind
		clean func(context.Context, int, int) error
	}{
		{megaverse.KindPolyanet, r.clients.Polyanets.Clean},
		{megaverse.KindSoloon, r.clients.Soloons.Clean},
		{megaverse.KindCometh, r.clients.Comeths.Clean},
	}

	calls := 0
	for _, step := range steps {
		calls++
		if err := step.clean(ctx, row, col); err != nil {
			r.metrics.RecordFailure(step.kind, row, col, err)
			return calls, &CellError{Row: row, Column: col, Err: err}
		}
		r.metrics.RecordClean(step.kind, row, col)
	}
	return calls, nil
}

func (r *Reconciler) set(ctx context.Context, row, col int, cell megaverse.Cell) error {
	var err error
	switch cell.Kind {
	case megaverse.KindPolyanet:
		err = r.clients.Polyanets.Set(ctx, row, col)
	case megaverse.KindSoloon:
		err = r.clients.Soloons.Set(ctx, row, col, cell.Color)
	case megaverse.KindCometh:
		err = r.clients.Comeths.Set(ctx, row, col, cell.Direction)
	default:
		err = fmt.Errorf("cannot set %s", cell)
	}

	if err != nil {
		r.metrics.RecordFailure(cell.Kind, row, col, err)
		return &CellError{Row: row, Column: col, Err: err}
	}
	r.metrics.RecordSet(cell.Kind, row, col)
	return nil
}
