package taskquery

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Lookup finds entity identifiers by display name.
type Lookup interface {
	UserIDsByNames(ctx context.Context, names []string) ([]string, error)
	TagIDsByNames(ctx context.Context, names []string) ([]string, error)
	TeamIDByName(ctx context.Context, name string) (id string, found bool, err error)
	ProjectIDByName(ctx context.Context, name string) (id string, found bool, err error)
}

// Resolver translates the name based facets of a Request into identifiers.
type Resolver struct {
	lookup Lookup
}

func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve runs the lookups for every requested facet concurrently. Facets
// that were not requested are skipped. The first lookup error cancels the
// others and is returned with an empty result.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Resolved, error) {
	var res Resolved
	g, ctx := errgroup.WithContext(ctx)

	if len(req.Owners) > 0 {
		g.Go(func() error {
			ids, err := r.lookup.UserIDsByNames(ctx, req.Owners)
			res.OwnerIDs = ids
			return err
		})
	}
	if len(req.Tags) > 0 {
		g.Go(func() error {
			ids, err := r.lookup.TagIDsByNames(ctx, req.Tags)
			res.TagIDs = ids
			return err
		})
	}
	if req.Team != "" {
		g.Go(func() error {
			id, found, err := r.lookup.TeamIDByName(ctx, req.Team)
			res.TeamID, res.TeamFound = id, found
			return err
		})
	}
	if req.Project != "" {
		g.Go(func() error {
			id, found, err := r.lookup.ProjectIDByName(ctx, req.Project)
			res.ProjectID, res.ProjectFound = id, found
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Resolved{}, err
	}
	return res, nil
}
