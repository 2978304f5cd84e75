package chip8

import (
	"context"
	"time"
)

// pacer limits the cycle rate by sleeping for the rest of a period
// that was not used by the previous cycle.
type pacer struct {
	period time.Duration
	last   time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func newPacer(rate uint) *pacer {
	p := &pacer{
		now:   time.Now,
		sleep: sleepContext,
	}
	p.setRate(rate)
	return p
}

func (p *pacer) setRate(rate uint) {
	if rate == 0 {
		p.period = 0
		return
	}
	p.period = time.Second / time.Duration(rate)
}

// wait blocks until one period has passed since the previous call.
func (p *pacer) wait(ctx context.Context) error {
	if p.period == 0 {
		return nil
	}

	now := p.now()
	if !p.last.IsZero() {
		if elapsed := now.Sub(p.last); elapsed < p.period {
			if err := p.sleep(ctx, p.period-elapsed); err != nil {
				return err
			}
			now = p.now()
		}
	}
	p.last = now
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
