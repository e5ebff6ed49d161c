package player

import (
	"context"
	"time"
)

// Run steps the player once per frame interval until ctx is cancelled, a
// Step fails, or limit frames have been drawn. A limit of zero or less means
// no limit.
func (p *Player) Run(ctx context.Context, limit int) error {
	t := time.NewTicker(p.cfg.FrameInterval())
	defer t.Stop()

	for n := 0; limit <= 0 || n < limit; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		if err := p.Step(); err != nil {
			return err
		}
	}
	return nil
}
