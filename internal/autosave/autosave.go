// Package autosave periodically re-saves the bookmark collection.
package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/nikbrunner/shelf/internal/logger"
)

// Saver persists current state. Saving unchanged state must be harmless.
type Saver interface {
	Persist(ctx context.Context) error
}

// Autosaver calls Saver.Persist on every tick until stopped.
// While paused, ticks are suspended; Trigger still saves.
type Autosaver struct {
	saver    Saver
	log      logger.Logger
	interval time.Duration

	mu     sync.Mutex
	paused bool

	wake    chan struct{}
	trigger chan struct{}
	stopCh  chan struct{}
	done    chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates an Autosaver. Call Start to begin ticking.
func New(saver Saver, interval time.Duration, log logger.Logger) *Autosaver {
	if log == nil {
		log = logger.Nop()
	}
	return &Autosaver{
		saver:    saver,
		log:      log,
		interval: interval,
		wake:     make(chan struct{}, 1),
		trigger:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the save loop in a goroutine. It returns immediately.
// The loop ends on Stop or when ctx is done.
func (a *Autosaver) Start(ctx context.Context) {
	a.startOnce.Do(func() {
		go a.run(ctx)
	})
}

func (a *Autosaver) run(ctx context.Context) {
	defer close(a.done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	if a.Paused() {
		ticker.Stop()
	}

	a.log.Debug("autosave started", logger.Duration("interval", a.interval))
	for {
		select {
		case <-ticker.C:
			if a.Paused() {
				continue
			}
			a.save(ctx, "tick")
		case <-a.trigger:
			a.save(ctx, "trigger")
		case <-a.wake:
			if a.Paused() {
				ticker.Stop()
			} else {
				ticker.Reset(a.interval)
			}
		case <-a.stopCh:
			a.log.Debug("autosave stopped")
			return
		case <-ctx.Done():
			return
		}
	}
}

func (a *Autosaver) save(ctx context.Context, reason string) {
	if err := a.saver.Persist(ctx); err != nil {
		a.log.Warn("autosave failed", logger.String("reason", reason), logger.Error(err))
		return
	}
	a.log.Debug("autosaved", logger.String("reason", reason))
}

// Pause suspends periodic saves, e.g. while the window is hidden.
func (a *Autosaver) Pause() { a.setPaused(true) }

// Resume restarts periodic saves with a full interval.
func (a *Autosaver) Resume() { a.setPaused(false) }

func (a *Autosaver) Paused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

func (a *Autosaver) setPaused(p bool) {
	a.mu.Lock()
	changed := a.paused != p
	a.paused = p
	a.mu.Unlock()

	if changed {
		select {
		case a.wake <- struct{}{}:
		default:
		}
	}
}

// Trigger requests an immediate save without waiting for the next tick.
func (a *Autosaver) Trigger() {
	select {
	case a.trigger <- struct{}{}:
	default: // a save is already pending
	}
}

// Stop halts the loop and waits for an in-flight save to finish.
// It is safe to call more than once, and before Start.
func (a *Autosaver) Stop() {
	a.stopOnce.Do(func() {
		close(a.stopCh)
	})

	started := true
	a.startOnce.Do(func() { started = false })
	if started {
		<-a.done
	}
}
