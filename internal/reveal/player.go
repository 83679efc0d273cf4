package reveal

import (
	"context"
	"time"
)

// Player walks one schedule with a single timer. Stop cancels every pending
// reveal at once.
type Player struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Play starts revealing entries in order, calling fn on the player's
// goroutine for each one. Entries must be sorted by Delay.
func Play(ctx context.Context, entries []Entry, fn func(Entry)) *Player {
	ctx, cancel := context.WithCancel(ctx)
	p := &Player{cancel: cancel, done: make(chan struct{})}
	go p.run(ctx, entries, fn)
	return p
}

func (p *Player) run(ctx context.Context, entries []Entry, fn func(Entry)) {
	defer close(p.done)
	defer p.cancel()

	start := time.Now()
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for _, e := range entries {
		if wait := e.Delay - time.Since(start); wait > 0 {
			timer.Reset(wait)
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
		if ctx.Err() != nil {
			return
		}
		fn(e)
	}
}

// Stop cancels the remaining reveals and waits for the player goroutine to
// exit. fn is never called after Stop returns. Stop on a nil or finished
// Player is a no-op.
func (p *Player) Stop() {
	if p == nil {
		return
	}
	p.cancel()
	<-p.done
}

// Done is closed once every entry was revealed or the player was stopped.
func (p *Player) Done() <-chan struct{} { return p.done }
