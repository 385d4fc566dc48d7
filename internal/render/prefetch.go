package render

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-inspect2pdf/internal/mediacache"
	"github.com/alnah/go-inspect2pdf/internal/record"
)

type resolved struct {
	asset *mediacache.Asset
	err   error
}

// prefetcher resolves media references ahead of the consumer. At most depth
// references are in flight or waiting to be consumed; results are handed
// out strictly in reference order regardless of completion order.
type prefetcher struct {
	slots  []chan resolved
	window chan struct{}
	next   int
	cancel context.CancelFunc
	g      *errgroup.Group
}

func startPrefetch(ctx context.Context, media MediaResolver, refs []record.MediaReference, depth int) *prefetcher {
	depth = max(depth, 1)
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	p := &prefetcher{
		slots:  make([]chan resolved, len(refs)),
		window: make(chan struct{}, depth),
		cancel: cancel,
		g:      g,
	}
	for i := range p.slots {
		p.slots[i] = make(chan resolved, 1)
	}

	g.Go(func() error {
		for i, ref := range refs {
			select {
			case p.window <- struct{}{}:
			case <-gctx.Done():
				return nil
			}
			g.Go(func() error {
				a, err := media.Resolve(gctx, ref)
				p.slots[i] <- resolved{asset: a, err: err}
				return nil
			})
		}
		return nil
	})
	return p
}

// take returns the result for the next reference in order.
func (p *prefetcher) take(ctx context.Context) (*mediacache.Asset, error) {
	select {
	case r := <-p.slots[p.next]:
		p.next++
		<-p.window
		return r.asset, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// close cancels outstanding work and waits for workers to exit.
func (p *prefetcher) close() {
	p.cancel()
	_ = p.g.Wait()
}
