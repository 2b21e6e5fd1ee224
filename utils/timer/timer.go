package timer

import (
	"context"
	"time"

	"github.com/tuannh982/vector-map/utils/service"
)

// TimeoutRequest is armed with Reset and delivered on C once its Duration
// has elapsed.
type TimeoutRequest interface {
	Duration() time.Duration
	SetTimeoutTs(t time.Time)
	TimeoutTs() time.Time
}

// Timer holds at most one pending request. Resetting replaces the pending
// request without delivering it.
type Timer[R TimeoutRequest] interface {
	service.Service
	C() <-chan R
	// Reset blocks until the timer goroutine accepts the request or the timer
	// stops. It reports whether the request was accepted.
	Reset(R) bool
}

type timer[R TimeoutRequest] struct {
	*service.SimpleService
	clock   *time.Timer
	request chan R
	timeout chan R
}

func NewTimer[R TimeoutRequest](name string) Timer[R] {
	t := &timer[R]{
		clock:   time.NewTimer(0),
		request: make(chan R),
		timeout: make(chan R, 1),
	}
	t.SimpleService = service.NewSimpleService(name, t)
	t.drainClock()
	return t
}

func (t *timer[R]) drainClock() {
	if !t.clock.Stop() {
		select {
		case <-t.clock.C:
		default:
		}
	}
}

func (t *timer[R]) OnStart(ctx context.Context) error {
	go func() {
		var current R
		for {
			select {
			case req := <-t.request:
				t.drainClock()
				current = req
				t.clock.Reset(current.Duration())
			case ts := <-t.clock.C:
				current.SetTimeoutTs(ts)
				select {
				case t.timeout <- current:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (t *timer[R]) OnStop() {
	t.drainClock()
}

func (t *timer[R]) C() <-chan R {
	return t.timeout
}

func (t *timer[R]) Reset(request R) bool {
	done := t.Done()
	select {
	case <-done:
		return false
	default:
	}
	select {
	case t.request <- request:
		return true
	case <-done:
		return false
	}
}
