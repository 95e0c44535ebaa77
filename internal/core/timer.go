package core

import "time"

// Pacer converts wall-clock time into a number of due simulation steps at a
// steady steps-per-second rate, independent of how often it is polled.
type Pacer struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxBurst    int
	now         func() time.Time
}

// NewPacer constructs a Pacer targeting the given steps per second.
func NewPacer(tps int) *Pacer {
	p := &Pacer{maxBurst: 8, now: time.Now}
	p.SetTPS(tps)
	return p
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (p *Pacer) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	p.step = time.Second / time.Duration(tps)
}

// Due reports how many steps should run since the previous call. Bursts are
// capped so a stalled caller does not try to catch up all at once.
func (p *Pacer) Due() int {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
		return 1
	}
	p.accumulator += now.Sub(p.last)
	p.last = now
	n := 0
	for p.accumulator >= p.step && n < p.maxBurst {
		p.accumulator -= p.step
		n++
	}
	if n == p.maxBurst {
		p.accumulator = 0
	}
	return n
}
