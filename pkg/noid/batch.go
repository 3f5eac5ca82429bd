package noid

import (
	"context"
	"fmt"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MintRange mints count identifiers for the indexes start, start+1, ...
// in parallel and returns them in index order. A negative start mints count
// random identifiers instead. The first failure cancels the remaining work.
func (m *Minter) MintRange(ctx context.Context, start int64, count int) ([]string, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative count %d", count)
	}

	ids := make([]string, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < count; i++ {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			n := big.NewInt(start)
			if start >= 0 {
				n.Add(n, big.NewInt(int64(i)))
			}
			id, err := m.MintBig(n)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}
