package host

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/ballflaps/internal/config"
	"github.com/vovakirdan/ballflaps/internal/engine"
)

// loopSource repeats a fixed sequence of random values.
type loopSource struct {
	vals []float64
	i    int
}

func (s *loopSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// safeSource makes every gap cover y in [184.7, 400].
func safeSource() engine.Source {
	return &loopSource{vals: []float64{0.5, 0.40625}}
}

type failingBest struct {
	saves int
}

func (f *failingBest) Best() (int, error) {
	return 0, errors.New("disk on fire")
}

func (f *failingBest) SaveBest(int) error {
	f.saves++
	return errors.New("disk on fire")
}

func newController(t *testing.T, best BestScores, opts ...ControllerOption) *Controller {
	t.Helper()
	eng, err := engine.New(config.DefaultConfig(), engine.WithSource(safeSource()))
	if err != nil {
		t.Fatalf("engine.New() error: %v", err)
	}
	return NewController(eng, best, opts...)
}

// playUntil flaps every 31 frames, which hovers the ball inside the safe
// gaps, until the score reaches target. Then it stops flapping and waits
// for the ball to hit the floor.
func playUntil(t *testing.T, c *Controller, target int) engine.GameOverEvent {
	t.Helper()
	for i := 0; i < 20000; i++ {
		if c.Snapshot().Score < target && i%31 == 0 {
			c.Flap()
		}
		res := c.Frame()
		if res.GameOver != nil {
			return *res.GameOver
		}
	}
	t.Fatal("session never ended")
	return engine.GameOverEvent{}
}

func TestControllerTransitions(t *testing.T) {
	c := newController(t, NewMemoryBest(0))

	if c.Status() != StateIdle {
		t.Fatalf("new controller should be idle, got %v", c.Status())
	}
	if err := c.Restart(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Restart from idle: error = %v, expected ErrInvalidTransition", err)
	}

	if err := c.Start(480, 640); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if c.Status() != StatePlaying {
		t.Errorf("after Start status = %v, expected playing", c.Status())
	}
	if err := c.Start(480, 640); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Start: error = %v, expected ErrInvalidTransition", err)
	}
	if err := c.Restart(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Restart while playing: error = %v, expected ErrInvalidTransition", err)
	}

	playUntil(t, c, 0)
	if c.Status() != StateGameOver {
		t.Fatalf("after crash status = %v, expected game over", c.Status())
	}
	if err := c.Start(480, 640); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start after game over: error = %v, expected ErrInvalidTransition", err)
	}

	if err := c.Restart(); err != nil {
		t.Fatalf("Restart() error: %v", err)
	}
	s := c.Snapshot()
	if c.Status() != StatePlaying || s.Frame != 0 || s.Score != 0 {
		t.Errorf("after Restart expected a fresh session, got status=%v frame=%d score=%d", c.Status(), s.Frame, s.Score)
	}
}

func TestControllerStartRejectsBadPlayfield(t *testing.T) {
	c := newController(t, nil)

	if err := c.Start(480, 200); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("Start(480, 200) error = %v, expected ErrInvalidConfig", err)
	}
	if c.Status() != StateIdle {
		t.Errorf("failed Start should stay idle, got %v", c.Status())
	}
	if err := c.Start(480, 640); err != nil {
		t.Errorf("Start after a failed attempt: %v", err)
	}
}

func TestFrameFreezesAfterGameOver(t *testing.T) {
	c := newController(t, nil)
	if err := c.Start(480, 640); err != nil {
		t.Fatal(err)
	}

	ev := playUntil(t, c, 0)
	if ev.Cause != engine.CauseFloor {
		t.Errorf("cause = %v, expected floor", ev.Cause)
	}

	final := c.Snapshot()
	if !final.Paused {
		t.Error("engine should be paused on the final frame")
	}
	for i := 0; i < 10; i++ {
		c.Flap()
		res := c.Frame()
		if res.GameOver != nil || res.Scored != nil {
			t.Fatalf("frame after game over emitted events: %+v", res)
		}
		if res.Snapshot.Frame != final.Frame {
			t.Fatalf("frame advanced after game over: %d -> %d", final.Frame, res.Snapshot.Frame)
		}
	}
}

func TestGameOverFrameReportsFrozenEngine(t *testing.T) {
	c := newController(t, nil)
	if err := c.Start(480, 640); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000; i++ {
		res := c.Frame()
		if res.GameOver == nil {
			continue
		}
		if !res.Snapshot.Paused {
			t.Error("game over frame should report the paused engine")
		}
		if res.Snapshot.Status != engine.StatusOver {
			t.Errorf("status = %v, expected over", res.Snapshot.Status)
		}
		if res.Snapshot.Frame != res.GameOver.Frame {
			t.Errorf("snapshot frame %d, game over at %d", res.Snapshot.Frame, res.GameOver.Frame)
		}
		if !c.Snapshot().Paused {
			t.Error("controller snapshot should report the paused engine")
		}
		return
	}
	t.Fatal("session never ended")
}

func TestBestScoreWrittenOnce(t *testing.T) {
	best := NewMemoryBest(1)
	var gameOvers []engine.GameOverEvent
	var scores []int
	c := newController(t, best,
		WithGameOverCallback(func(ev engine.GameOverEvent) { gameOvers = append(gameOvers, ev) }),
		WithScoreCallback(func(score int) { scores = append(scores, score) }),
	)

	if c.Best() != 1 {
		t.Fatalf("Best() = %d, expected the stored 1", c.Best())
	}
	if err := c.Start(480, 640); err != nil {
		t.Fatal(err)
	}

	ev := playUntil(t, c, 3)
	if ev.Score != 3 {
		t.Fatalf("final score = %d, expected 3", ev.Score)
	}
	if got, _ := best.Best(); got != 3 || best.Saves() != 1 {
		t.Errorf("stored best = %d after %d saves, expected 3 after 1", got, best.Saves())
	}
	if c.Best() != 3 {
		t.Errorf("Best() = %d, expected 3", c.Best())
	}
	if len(scores) != 3 || scores[2] != 3 {
		t.Errorf("score callbacks = %v, expected [1 2 3]", scores)
	}

	// A worse session must not touch the store
	if err := c.Restart(); err != nil {
		t.Fatal(err)
	}
	playUntil(t, c, 1)
	if best.Saves() != 1 {
		t.Errorf("SaveBest called %d times, expected 1", best.Saves())
	}
	if len(gameOvers) != 2 {
		t.Errorf("game over callback fired %d times, expected 2", len(gameOvers))
	}
}

func TestFailingBestStoreIsSwallowed(t *testing.T) {
	store := &failingBest{}
	c := newController(t, store)

	if c.Best() != 0 {
		t.Errorf("Best() = %d, expected 0 when the store cannot be read", c.Best())
	}
	if err := c.Start(480, 640); err != nil {
		t.Fatal(err)
	}

	playUntil(t, c, 1)
	if store.saves != 1 {
		t.Errorf("SaveBest attempted %d times, expected 1", store.saves)
	}
	if c.Best() != 1 {
		t.Errorf("Best() = %d, expected 1 in memory", c.Best())
	}
	if err := c.Restart(); err != nil {
		t.Errorf("Restart after a failed save: %v", err)
	}
}

func TestFlapsAreAppliedAtFrameStart(t *testing.T) {
	c := newController(t, nil)
	if err := c.Start(480, 640); err != nil {
		t.Fatal(err)
	}

	c.Flap()
	c.Flap()
	c.Flap()
	res := c.Frame()
	if res.Snapshot.Ball.VelocityY != -7.5 {
		t.Errorf("VelocityY = %v, expected -7.5 after flap and tick", res.Snapshot.Ball.VelocityY)
	}

	res = c.Frame()
	if res.Snapshot.Ball.VelocityY != -7 {
		t.Errorf("queued flaps leaked into the next frame, VelocityY = %v", res.Snapshot.Ball.VelocityY)
	}
}

func TestFlapsWhileOverAreDropped(t *testing.T) {
	c := newController(t, nil)
	if err := c.Start(480, 640); err != nil {
		t.Fatal(err)
	}
	playUntil(t, c, 0)

	c.Flap()
	if err := c.Restart(); err != nil {
		t.Fatal(err)
	}
	res := c.Frame()
	if res.Snapshot.Ball.VelocityY != 0.5 {
		t.Errorf("flap queued during game over reached the new session, VelocityY = %v", res.Snapshot.Ball.VelocityY)
	}
}

func TestResizeAppliesOnRestart(t *testing.T) {
	c := newController(t, nil)
	if err := c.Start(480, 640); err != nil {
		t.Fatal(err)
	}

	c.Resize(600, 800)
	if w := c.Frame().Snapshot.Width; w != 480 {
		t.Errorf("running session changed width to %v", w)
	}

	playUntil(t, c, 0)
	if err := c.Restart(); err != nil {
		t.Fatal(err)
	}
	s := c.Snapshot()
	if s.Width != 600 || s.Height != 800 {
		t.Errorf("after restart playfield = %vx%v, expected 600x800", s.Width, s.Height)
	}
	if s.Ball.X != 150 || s.Ball.Y != 400 {
		t.Errorf("ball = (%v, %v), expected (150, 400)", s.Ball.X, s.Ball.Y)
	}
}

func TestAutopilotSurvives(t *testing.T) {
	c := newController(t, nil)
	if err := c.Start(480, 640); err != nil {
		t.Fatal(err)
	}

	pilot := NewAutopilot()
	for i := 0; i < 3000; i++ {
		if pilot.ShouldFlap(c.Snapshot()) {
			c.Flap()
		}
		if res := c.Frame(); res.GameOver != nil {
			t.Fatalf("autopilot crashed at frame %d: %+v", i+1, res.GameOver)
		}
	}
	if score := c.Snapshot().Score; score < 20 {
		t.Errorf("autopilot score = %d after 3000 frames, expected at least 20", score)
	}
}

func TestAutopilotIdle(t *testing.T) {
	c := newController(t, nil)
	if NewAutopilot().ShouldFlap(c.Snapshot()) {
		t.Error("autopilot should not flap before the session starts")
	}
}

func TestFlapQueueConcurrent(t *testing.T) {
	var q FlapQueue
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Push()
			q.Push()
		}()
	}
	wg.Wait()

	if n := q.Drain(); n != 100 {
		t.Errorf("Drain() = %d, expected 100", n)
	}
	if n := q.Drain(); n != 0 {
		t.Errorf("second Drain() = %d, expected 0", n)
	}
}

func TestLoopUnthrottled(t *testing.T) {
	frames := 0
	l := NewLoop(0, func() bool {
		frames++
		return frames < 50
	})

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if frames != 50 {
		t.Errorf("ran %d frames, expected 50", frames)
	}

	l.Stop()
	l.Stop()
}

func TestLoopStop(t *testing.T) {
	var frames atomic.Int64
	l := NewLoop(1000, func() bool {
		frames.Add(1)
		return true
	})

	errc := make(chan error, 1)
	go func() { errc <- l.Run(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for frames.Load() < 5 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	l.Stop()
	stopped := frames.Load()
	time.Sleep(20 * time.Millisecond)
	if after := frames.Load(); after != stopped {
		t.Errorf("frames ran after Stop returned: %d -> %d", stopped, after)
	}

	if err := <-errc; err != nil {
		t.Errorf("Run() after Stop returned %v, expected nil", err)
	}
	l.Stop()
}

func TestLoopContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(1000, func() bool { return true })

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, expected context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
