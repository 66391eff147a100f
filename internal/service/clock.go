package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// TickFunc is called on every tick of a game clock. Returning false stops that clock.
// It runs on the clock goroutine and must not call Stop for its own game.
type TickFunc func(ctx context.Context, gameID string) bool

type ClockService interface {
	Start(gameID string, tick TickFunc)
	Stop(gameID string)
	StopAll()
	Running(gameID string) bool
}

type clockService struct {
	logger   *slog.Logger
	interval time.Duration

	mu     sync.Mutex
	clocks map[string]*runningClock
	wg     sync.WaitGroup
}

type runningClock struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func NewClockService(logger *slog.Logger, interval time.Duration) ClockService {
	return &clockService{
		logger:   logger,
		interval: interval,
		clocks:   make(map[string]*runningClock),
	}
}

// Start launches the ticker of gameID. Starting a clock that already runs does nothing.
func (that *clockService) Start(gameID string, tick TickFunc) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.clocks[gameID]; ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	clock := &runningClock{cancel: cancel, done: make(chan struct{})}
	that.clocks[gameID] = clock

	that.wg.Add(1)
	go that.run(ctx, gameID, clock, tick)

	that.logger.Debug("clock started", "gameID", gameID)
}

func (that *clockService) run(ctx context.Context, gameID string, clock *runningClock, tick TickFunc) {
	defer that.wg.Done()
	defer close(clock.done)

	ticker := time.NewTicker(that.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}

			if !tick(ctx, gameID) {
				that.forget(gameID, clock)
				return
			}
		}
	}
}

// forget drops clock from the registry unless a newer clock replaced it.
func (that *clockService) forget(gameID string, clock *runningClock) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.clocks[gameID] == clock {
		delete(that.clocks, gameID)
	}
	clock.cancel()
}

// Stop cancels the ticker of gameID and waits for it to exit. No tick of that game fires after
// Stop returns.
func (that *clockService) Stop(gameID string) {
	that.mu.Lock()
	clock, ok := that.clocks[gameID]
	if ok {
		delete(that.clocks, gameID)
	}
	that.mu.Unlock()

	if !ok {
		return
	}

	clock.cancel()
	<-clock.done

	that.logger.Debug("clock stopped", "gameID", gameID)
}

func (that *clockService) StopAll() {
	that.mu.Lock()
	for gameID, clock := range that.clocks {
		clock.cancel()
		delete(that.clocks, gameID)
	}
	that.mu.Unlock()

	that.wg.Wait()
}

func (that *clockService) Running(gameID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, ok := that.clocks[gameID]
	return ok
}
