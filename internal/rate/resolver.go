package rate

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

// Resolver picks the amount that applies to a tool group: the group's own
// value when set, otherwise the global rate of the matching name.
type Resolver struct {
	repo  Repository
	names Names
}

func NewResolver(repo Repository, names Names) *Resolver {
	return &Resolver{repo: repo, names: names}
}

func (r *Resolver) ResolveDailyRate(ctx context.Context, g *inventory.Group) (int64, error) {
	if g.DailyRentalRate != nil {
		return *g.DailyRentalRate, nil
	}

	return r.global(ctx, r.names.DailyRental)
}

func (r *Resolver) ResolveReplacementValue(ctx context.Context, g *inventory.Group) (int64, error) {
	if g.ReplacementValue != nil {
		return *g.ReplacementValue, nil
	}

	return r.global(ctx, r.names.ReplacementValue)
}

// ResolveLateFeeRate returns the per-day amount charged for late returns.
func (r *Resolver) ResolveLateFeeRate(ctx context.Context) (int64, error) {
	return r.global(ctx, r.names.LateFee)
}

func (r *Resolver) global(ctx context.Context, name string) (int64, error) {
	gr, err := r.repo.GetRateByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("resolve %q: %w", name, err)
	}

	return gr.DailyRateValue, nil
}
