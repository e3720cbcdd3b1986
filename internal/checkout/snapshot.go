package checkout

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// CartFetcher reads the authenticated user's current cart.
type CartFetcher interface {
	FetchCart(ctx context.Context, token string) (CartSnapshot, error)
}

// ProfileFetcher reads the authenticated user's stored region, used to
// pre-seed the delivery form.
type ProfileFetcher interface {
	FetchRegion(ctx context.Context, token string) (string, error)
}

// PriceFetcher reads the delivery price table. Unauthenticated.
type PriceFetcher interface {
	FetchPriceTable(ctx context.Context) (PriceTable, error)
}

// Snapshot is everything the checkout view needs, fetched fresh on each
// load.
type Snapshot struct {
	Cart   CartSnapshot
	Region string
	Prices PriceTable
}

type Loader struct {
	Cart    CartFetcher
	Profile ProfileFetcher
	Prices  PriceFetcher
}

// Load fetches cart, region, and price table concurrently and joins the
// results. All-or-nothing: any failed read fails the load, so the view never
// renders from a partial snapshot. A blank token fails immediately without
// touching the backend.
func (l *Loader) Load(ctx context.Context, token string) (*Snapshot, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrUnauthenticated
	}

	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cart, err := l.Cart.FetchCart(ctx, token)
		if err != nil {
			return err
		}
		snap.Cart = cart
		return nil
	})

	g.Go(func() error {
		region, err := l.Profile.FetchRegion(ctx, token)
		if err != nil {
			return err
		}
		snap.Region = region
		return nil
	})

	g.Go(func() error {
		prices, err := l.Prices.FetchPriceTable(ctx)
		if err != nil {
			return err
		}
		if err := prices.Validate(); err != nil {
			return err
		}
		snap.Prices = prices
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
