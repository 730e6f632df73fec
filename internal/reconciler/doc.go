// Package reconciler makes a candidate's megaverse match its goal map.
//
// # Overview
//
// A run fetches the live map and the goal map, diffs them cell by cell and
// issues the create or delete calls that close the gap. Nothing is kept
// between runs; the API is the only source of truth, so a run that stopped
// half way is finished by running again.
//
// # Planning
//
// BuildPlan is a pure function over the two maps. It:
//
//   - rejects maps of different shape with ErrDimensionMismatch
//   - parses every goal token before any call is made, so an invalid color
//     or direction aborts the run with nothing applied
//   - skips cells whose current value already equals the goal
//   - emits one Action per remaining cell, in row-major order
//
// Goal tokens that name no object kind (neither SPACE, POLYANET, *_SOLOON
// nor *_COMETH) are planned as ActionSkipUnknown: they are logged at error
// level and skipped, and the rest of the map is still reconciled.
//
// # Execution
//
// Actions run one at a time, in plan order:
//
//   - goal SPACE: clean polyanet, soloon and cometh at the position
//   - goal POLYANET: set a polyanet
//   - goal <COLOR>_SOLOON: set a soloon with that color
//   - goal <DIRECTION>_COMETH: set a cometh with that direction
//
// The first failing call ends the run with a *CellError wrapping the client
// error. There is no rollback.
//
// Example usage:
//
//	client, err := megaverse.NewClient(candidateID)
//	if err != nil {
//	    return err
//	}
//	r, err := reconciler.New(reconciler.ClientsFrom(client), reconciler.WithCandidateID(candidateID))
//	if err != nil {
//	    return err
//	}
//	summary, err := r.Reconcile(ctx)
package reconciler
