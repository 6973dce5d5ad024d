package match

import (
	"context"
	"sync"
	"time"

	"github.com/amalg/go-bombman/internal/game"
)

// HoldMovement is how long a movement key keeps the player walking after
// its last key event. Terminals report key repeats, never releases.
const HoldMovement = 200 // ms

// Engine is the real-time loop around a series. Human intents arrive through
// EnqueueAction from any goroutine; the loop applies them on the next tick.
type Engine struct {
	series   *Series
	tickRate int
	maxDelta int

	actions chan game.Intent
	mu      sync.Mutex
	onTick  func(Snapshot) // Callback after each tick with a COPY of state

	held    map[int]heldMove
	pending []game.Intent
	// latched holds players whose Special key is down; repeats are
	// dropped until the key has been quiet for HoldMovement ms.
	latched map[int]int
}

type heldMove struct {
	action game.Action
	left   int
}

// NewEngine wraps a series. maxDelta caps the time simulated by one tick.
func NewEngine(series *Series, tickRate, maxDelta int) *Engine {
	if tickRate <= 0 {
		tickRate = 30
	}
	if maxDelta <= 0 || maxDelta > MaxStep {
		maxDelta = MaxStep
	}
	return &Engine{
		series:   series,
		tickRate: tickRate,
		maxDelta: maxDelta,
		actions:  make(chan game.Intent, 256),
		held:     make(map[int]heldMove),
		latched:  make(map[int]int),
	}
}

// OnTick sets a callback that is invoked after every tick with a copy of the state.
func (e *Engine) OnTick(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTick = fn
}

// EnqueueAction queues a human intent for the next tick.
func (e *Engine) EnqueueAction(in game.Intent) {
	select {
	case e.actions <- in:
	default:
		// Drop action if buffer is full (prevents blocking)
	}
}

// Run advances the series at the configured tick rate using wall-clock
// deltas. It blocks until ctx is cancelled, the series ends, or recording a
// result fails.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(e.tickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := int(now.Sub(last) / time.Millisecond)
			last = now
			done, err := e.Step(dt)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// Step simulates one tick of dt ms, clamped to [0, maxDelta], and reports
// whether the series has finished.
// We copy the state while holding the lock, then release the lock BEFORE
// calling onTick; the callback may call back into the engine.
func (e *Engine) Step(dt int) (bool, error) {
	dt = max(0, min(dt, e.maxDelta))

	e.mu.Lock()
	e.drainActions()
	err := e.series.Step(e.humanIntents(dt), dt)
	snap := e.snapshotLocked()
	fn := e.onTick
	e.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return snap.Done, err
}

// drainActions moves queued intents into the held movement and the one-shot
// pending list.
func (e *Engine) drainActions() {
	for {
		select {
		case in := <-e.actions:
			if _, ok := in.Action.Direction(); ok {
				e.held[in.PlayerID] = heldMove{action: in.Action, left: HoldMovement}
				continue
			}
			if in.Action == game.ActionSpecial {
				_, down := e.latched[in.PlayerID]
				e.latched[in.PlayerID] = HoldMovement
				if down {
					continue
				}
			}
			e.pending = append(e.pending, in)
		default:
			return
		}
	}
}

func (e *Engine) humanIntents(dt int) []game.Intent {
	var out []game.Intent
	for id, h := range e.held {
		if h.left <= 0 {
			delete(e.held, id)
			continue
		}
		out = append(out, game.Intent{PlayerID: id, Action: h.action})
		h.left -= dt
		e.held[id] = h
	}
	for id, left := range e.latched {
		if left -= dt; left <= 0 {
			delete(e.latched, id)
		} else {
			e.latched[id] = left
		}
	}
	out = append(out, e.pending...)
	e.pending = e.pending[:0]
	return out
}

// Snapshot returns a deep copy of the current state safe to read from any
// goroutine. Queued events are left for the next tick.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyMap(e.series, false)
}

// snapshotLocked copies the state and drains the event queues.
// MUST be called while e.mu is held.
func (e *Engine) snapshotLocked() Snapshot {
	return copyMap(e.series, true)
}
