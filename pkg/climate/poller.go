package climate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultPollInterval is the refresh period used when none is configured.
// The connector's read watchdog is tuned to 2.5x this value.
const DefaultPollInterval = 60 * time.Second

// pollUnhealthyAfter is the consecutive-failure count at which poll
// failures escalate from debug to warning and IsHealthy turns false.
// A single miss on a lossy link is routine; a run of them is not.
const pollUnhealthyAfter = 3

// Poller periodically refreshes room state through a Controller.
// The hub only reports on request (plus unsolicited changes), so a
// steady poll cadence is what keeps snapshots and the read link warm.
type Poller struct {
	controller Controller
	interval   time.Duration

	// First poll waits this long after Start so the discovery burst
	// settles before status requests hit the wire.
	initialDelay time.Duration

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	mu                  sync.Mutex
	consecutiveFailures int
}

// NewPoller creates a poller driving controller.PollAll every interval.
func NewPoller(controller Controller, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		controller:   controller,
		interval:     interval,
		initialDelay: interval / 4,
	}
}

// Start begins the polling loop. Calling Start on a running poller is a no-op.
func (p *Poller) Start() {
	if p.running.Swap(true) {
		return
	}
	p.stopCh = make(chan struct{})
	p.wg.Add(1)
	go p.loop()
}

// Stop halts the polling loop and waits for it to exit.
func (p *Poller) Stop() {
	if !p.running.Swap(false) {
		return
	}
	close(p.stopCh)
	p.wg.Wait()
}

// IsRunning reports whether the loop is active.
func (p *Poller) IsRunning() bool {
	return p.running.Load()
}

// IsHealthy reports whether polling has failed fewer times in a row
// than the unhealthy threshold.
func (p *Poller) IsHealthy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.consecutiveFailures < pollUnhealthyAfter
}

// ConsecutiveFailures returns the current consecutive failure count.
func (p *Poller) ConsecutiveFailures() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.consecutiveFailures
}

func (p *Poller) loop() {
	defer p.wg.Done()

	if p.initialDelay > 0 {
		select {
		case <-time.After(p.initialDelay):
		case <-p.stopCh:
			return
		}
	}
	p.poll()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.poll()
		case <-p.stopCh:
			return
		}
	}
}

func (p *Poller) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	err := p.controller.PollAll(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.consecutiveFailures++
		evt := log.Debug()
		if p.consecutiveFailures >= pollUnhealthyAfter {
			evt = log.Warn()
		}
		evt.Err(err).
			Int("consecutive_failures", p.consecutiveFailures).
			Msg("Room poll failed")
		return
	}
	p.consecutiveFailures = 0
}
