package macro

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/arjunrao/modaltext/internal/key"
)

// EventHandler is a callback function that processes replayed key events.
type EventHandler func(event key.Event)

// Player replays recorded macros.
type Player struct {
	recorder *Recorder
	mu       sync.Mutex
	playing  atomic.Bool
	cancel   context.CancelFunc
}

// NewPlayer creates a new macro player that uses the given recorder for macro storage.
func NewPlayer(recorder *Recorder) *Player {
	return &Player{
		recorder: recorder,
	}
}

// preparePlayback validates a replay request and claims the player's
// playing flag, returning the macro's events and a context cancel func
// the caller owns. release must be deferred (or run inside the spawned
// goroutine) to clear the flag regardless of how playback ends.
func (p *Player) preparePlayback(parent context.Context, register rune, count int, handler EventHandler) ([]key.Event, context.Context, func(), error) {
	if !IsValidRegister(register) {
		return nil, nil, nil, fmt.Errorf("invalid register: %c", register)
	}

	events := p.recorder.Get(register)
	if len(events) == 0 {
		return nil, nil, nil, fmt.Errorf("empty register: %c", register)
	}

	if handler == nil {
		return nil, nil, nil, fmt.Errorf("handler cannot be nil")
	}

	ctx, cancel := context.WithCancel(parent)

	p.mu.Lock()
	if p.playing.Load() {
		p.mu.Unlock()
		cancel()
		return nil, nil, nil, fmt.Errorf("already playing a macro")
	}
	p.cancel = cancel
	p.playing.Store(true)
	p.mu.Unlock()

	release := func() {
		cancel() // Always release context resources
		p.playing.Store(false)
		p.mu.Lock()
		p.cancel = nil
		p.mu.Unlock()
	}

	return events, ctx, release, nil
}

// runEvents feeds events through handler count times, stopping early if
// ctx is cancelled.
func runEvents(ctx context.Context, events []key.Event, count int, handler EventHandler) error {
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		for _, event := range events {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				handler(event)
			}
		}
	}
	return nil
}

// Play replays a macro from the specified register.
// The count parameter specifies how many times to replay the macro (minimum 1).
// The handler is called for each key event in the macro.
// Returns an error if the register is empty or invalid.
// Playback runs synchronously - use PlayAsync for non-blocking playback.
func (p *Player) Play(register rune, count int, handler EventHandler) error {
	events, ctx, release, err := p.preparePlayback(context.Background(), register, count, handler)
	if err != nil {
		return err
	}
	defer release()

	if err := runEvents(ctx, events, count, handler); err != nil {
		return err
	}

	// Track last played register only after successful playback
	p.recorder.SetLastPlayed(register)
	return nil
}

// PlayAsync replays a macro asynchronously.
// Returns immediately and plays the macro in a goroutine.
// The done channel is closed when playback completes (can be nil if not needed).
// Any error during setup is returned immediately; playback errors are ignored.
func (p *Player) PlayAsync(register rune, count int, handler EventHandler, done chan<- struct{}) error {
	events, ctx, release, err := p.preparePlayback(context.Background(), register, count, handler)
	if err != nil {
		return err
	}

	go func() {
		defer func() {
			release()
			if done != nil {
				close(done)
			}
		}()

		if runEvents(ctx, events, count, handler) == nil {
			// Track last played register only after successful playback
			p.recorder.SetLastPlayed(register)
		}
	}()

	return nil
}

// PlayLast replays the last played macro.
// Equivalent to @@ in Vim.
func (p *Player) PlayLast(count int, handler EventHandler) error {
	register := p.recorder.LastPlayed()
	if register == 0 {
		return fmt.Errorf("no macro has been played")
	}
	return p.Play(register, count, handler)
}

// IsPlaying returns true if a macro is currently being played.
func (p *Player) IsPlaying() bool {
	return p.playing.Load()
}

// Cancel stops the currently playing macro.
// Safe to call even if no macro is playing.
func (p *Player) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

// PlayWithContext plays a macro with an external context for cancellation.
// This allows integration with application-level cancellation.
func (p *Player) PlayWithContext(ctx context.Context, register rune, count int, handler EventHandler) error {
	events, childCtx, release, err := p.preparePlayback(ctx, register, count, handler)
	if err != nil {
		return err
	}
	defer release()

	if err := runEvents(childCtx, events, count, handler); err != nil {
		return err
	}

	// Track last played register only after successful playback
	p.recorder.SetLastPlayed(register)
	return nil
}
