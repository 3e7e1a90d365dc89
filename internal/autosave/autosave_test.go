package autosave_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikbrunner/shelf/internal/autosave"
)

type countingSaver struct {
	n   atomic.Int32
	err error
}

func (s *countingSaver) Persist(context.Context) error {
	s.n.Add(1)
	return s.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestAutosaver_Ticks(t *testing.T) {
	saver := &countingSaver{}
	a := autosave.New(saver, 10*time.Millisecond, nil)
	a.Start(context.Background())
	defer a.Stop()

	waitFor(t, func() bool { return saver.n.Load() >= 3 })
}

func TestAutosaver_PauseStopsSaves(t *testing.T) {
	saver := &countingSaver{}
	a := autosave.New(saver, 10*time.Millisecond, nil)
	a.Start(context.Background())
	defer a.Stop()

	waitFor(t, func() bool { return saver.n.Load() >= 1 })
	a.Pause()
	if !a.Paused() {
		t.Fatal("expected paused")
	}
	// let any save that was already running finish
	time.Sleep(20 * time.Millisecond)
	before := saver.n.Load()

	time.Sleep(60 * time.Millisecond)
	if got := saver.n.Load(); got != before {
		t.Errorf("saved %d times while paused", got-before)
	}

	a.Resume()
	waitFor(t, func() bool { return saver.n.Load() > before })
}

func TestAutosaver_TriggerWhilePaused(t *testing.T) {
	saver := &countingSaver{}
	a := autosave.New(saver, time.Hour, nil)
	a.Pause()
	a.Start(context.Background())
	defer a.Stop()

	a.Trigger()
	waitFor(t, func() bool { return saver.n.Load() == 1 })
}

func TestAutosaver_ErrorsDoNotStopLoop(t *testing.T) {
	saver := &countingSaver{err: errors.New("disk full")}
	a := autosave.New(saver, 5*time.Millisecond, nil)
	a.Start(context.Background())
	defer a.Stop()

	waitFor(t, func() bool { return saver.n.Load() >= 3 })
}

func TestAutosaver_Stop(t *testing.T) {
	saver := &countingSaver{}
	a := autosave.New(saver, 5*time.Millisecond, nil)
	a.Start(context.Background())
	waitFor(t, func() bool { return saver.n.Load() >= 1 })

	a.Stop()
	a.Stop() // idempotent
	after := saver.n.Load()
	time.Sleep(30 * time.Millisecond)
	if saver.n.Load() != after {
		t.Error("saves continued after Stop")
	}
}

func TestAutosaver_StopBeforeStart(t *testing.T) {
	a := autosave.New(&countingSaver{}, time.Second, nil)
	done := make(chan struct{})
	go func() {
		a.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without Start")
	}
}

func TestAutosaver_ContextCancel(t *testing.T) {
	saver := &countingSaver{}
	ctx, cancel := context.WithCancel(context.Background())
	a := autosave.New(saver, 5*time.Millisecond, nil)
	a.Start(ctx)
	waitFor(t, func() bool { return saver.n.Load() >= 1 })

	cancel()
	a.Stop() // returns because the loop exited
}
