// Package countdown derives the time remaining until a launch instant and
// publishes it on a fixed cadence.
package countdown

import (
	"sync"
	"time"
)

// DefaultPeriod is the sampling cadence of a running engine.
const DefaultPeriod = time.Second

// Options configures an Engine.
type Options struct {
	// Target is resolved with ResolveTarget; nil selects DefaultTarget.
	Target any
	// Location for the default target and zone-less strings. Defaults to time.Local.
	Location *time.Location
	// Period between samples. Defaults to DefaultPeriod.
	Period time.Duration
	// Clock defaults to SystemClock.
	Clock Clock
	// OnComplete fires once per target when POST is first observed.
	OnComplete func()
}

// Engine owns a target instant and the ticker that samples it.
type Engine struct {
	mu         sync.Mutex
	clock      Clock
	loc        *time.Location
	period     time.Duration
	target     time.Time
	onComplete func()

	// latched never moves backwards along BEFORE -> LIVE -> POST for one target.
	latched   State
	completed bool
	last      Snapshot

	subscribers []chan Snapshot
	stopCh      chan struct{}
	running     bool
	stopped     bool
}

// New resolves the target and takes the first sample synchronously.
// A malformed target yields a *ConfigError.
func New(opts Options) (*Engine, error) {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}

	target, err := ResolveTarget(opts.Target, opts.Clock.Now(), opts.Location)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		clock:      opts.Clock,
		loc:        opts.Location,
		period:     opts.Period,
		target:     target,
		onComplete: opts.OnComplete,
	}
	engine.Snapshot()
	return engine, nil
}

// Target returns the resolved target instant.
func (engine *Engine) Target() time.Time {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.target
}

// Resolve parses raw against the engine's clock and zone without changing
// the current target.
func (engine *Engine) Resolve(raw any) (time.Time, error) {
	return ResolveTarget(raw, engine.clock.Now(), engine.loc)
}

// Running reports whether the ticker is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.running
}

// Last returns the most recent sample without taking a new one.
func (engine *Engine) Last() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.last
}

// Snapshot samples the countdown now. The only side effect is the
// completion callback, fired at most once per target.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	snapshot, fire := engine.sampleLocked()
	engine.mu.Unlock()

	if fire != nil {
		fire()
	}
	return snapshot
}

// SetTarget resolves raw and starts a fresh countdown toward it. On error
// the current target is kept.
func (engine *Engine) SetTarget(raw any) error {
	target, err := engine.Resolve(raw)
	if err != nil {
		return err
	}

	engine.mu.Lock()
	engine.target = target
	engine.latched = ""
	engine.completed = false
	snapshot, fire := engine.sampleLocked()
	if engine.running {
		engine.emitLocked(snapshot)
	}
	engine.mu.Unlock()

	if fire != nil {
		fire()
	}
	return nil
}

// SetOnComplete replaces the completion callback. The latest callback is
// used on the next transition into POST.
func (engine *Engine) SetOnComplete(fn func()) {
	engine.mu.Lock()
	engine.onComplete = fn
	engine.mu.Unlock()
}

// Subscribe registers an observer. A fresh snapshot is delivered
// immediately; later ticks are dropped for a full channel. After Stop the
// returned channel holds that one snapshot and is already closed.
func (engine *Engine) Subscribe(buffer int) <-chan Snapshot {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Snapshot, buffer)

	engine.mu.Lock()
	snapshot, fire := engine.sampleLocked()
	ch <- snapshot
	if engine.stopped {
		close(ch)
	} else {
		engine.subscribers = append(engine.subscribers, ch)
	}
	engine.mu.Unlock()

	if fire != nil {
		fire()
	}
	return ch
}

// Unsubscribe removes and closes an observer channel.
func (engine *Engine) Unsubscribe(sub <-chan Snapshot) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	for i, ch := range engine.subscribers {
		if ch == sub {
			engine.subscribers = append(engine.subscribers[:i], engine.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

// Start launches the ticking loop. Calling it on a running engine is a no-op.
func (engine *Engine) Start() {
	engine.mu.Lock()
	if engine.running {
		engine.mu.Unlock()
		return
	}
	engine.running = true
	engine.stopped = false
	stop := make(chan struct{})
	engine.stopCh = stop
	snapshot, fire := engine.sampleLocked()
	engine.emitLocked(snapshot)
	engine.mu.Unlock()

	if fire != nil {
		fire()
	}

	go engine.run(stop)
}

// Stop halts ticking and closes every observer channel. It is idempotent
// and never fires the completion callback.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.running {
		return
	}
	engine.running = false
	engine.stopped = true
	close(engine.stopCh)
	engine.stopCh = nil

	for _, ch := range engine.subscribers {
		close(ch)
	}
	engine.subscribers = nil
}

func (engine *Engine) run(stop chan struct{}) {
	ticker := time.NewTicker(engine.period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !engine.tick(stop) {
				return
			}
		}
	}
}

// tick samples and publishes unless the loop identified by stop was stopped
// in the meantime.
func (engine *Engine) tick(stop chan struct{}) bool {
	engine.mu.Lock()
	if !engine.running || engine.stopCh != stop {
		engine.mu.Unlock()
		return false
	}
	snapshot, fire := engine.sampleLocked()
	engine.emitLocked(snapshot)
	engine.mu.Unlock()

	if fire != nil {
		fire()
	}
	return true
}

// sampleLocked reads the clock at execution time, so late ticks self-correct.
func (engine *Engine) sampleLocked() (Snapshot, func()) {
	snapshot := Compute(engine.clock.Now(), engine.target)

	if engine.latched.rank() > snapshot.State.rank() {
		if engine.latched == StatePost {
			snapshot = postSnapshot()
		} else {
			snapshot.State = engine.latched
			if snapshot.TotalSeconds() >= liveWindow {
				snapshot.Remaining = decompose(liveWindow - 1)
			}
		}
	}
	engine.latched = snapshot.State
	engine.last = snapshot

	var fire func()
	if snapshot.State == StatePost && !engine.completed {
		engine.completed = true
		fire = engine.onComplete
	}
	return snapshot, fire
}

func (engine *Engine) emitLocked(snapshot Snapshot) {
	for _, ch := range engine.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
