// Package megaverse is the client for the megaverse challenge API.
//
// # Overview
//
// A megaverse is a grid of cells. Each cell is empty space or holds one
// object: a polyanet, a soloon (with a color) or a cometh (with a
// direction). The API exposes the live map and a goal map for a candidate,
// plus create and delete endpoints per object kind.
//
// # Clients
//
// Client is the shared HTTP core. It is created once per candidate and
// hands out one client per resource:
//
//	c, err := megaverse.NewClient(candidateID,
//	    megaverse.WithBaseURL(baseURL),
//	    megaverse.WithLogger(logging.Logger("MegaverseClient")),
//	)
//	if err != nil {
//	    return err
//	}
//
//	current, err := c.Map().GetStatus(ctx)
//	goal, err := c.Map().GetGoal(ctx)
//	err = c.Soloons().Set(ctx, 1, 0, megaverse.ColorRed)
//	err = c.Comeths().Clean(ctx, 1, 1)
//
// # Authentication
//
// Every create and delete payload runs through a chain of
// RequestDecorator functions. The candidate id decorator always runs last,
// so no other decorator can drop or replace it.
//
// # Retries
//
// Every request, reads included, is retried when the API answers 429, 500,
// 501 or 503. Attempts are spaced by a fixed interval (2s by default, 5
// attempts in total). When attempts run out the last *APIError is
// returned. Other statuses fail at once.
//
// A delete answered with 404 is reported as success: the object is
// already absent.
package megaverse
