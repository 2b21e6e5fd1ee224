package timer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type mockTimeoutRequest struct {
	id        int
	duration  time.Duration
	timeoutTs time.Time
}

func (r *mockTimeoutRequest) Duration() time.Duration {
	return r.duration
}

func (r *mockTimeoutRequest) SetTimeoutTs(t time.Time) {
	r.timeoutTs = t
}

func (r *mockTimeoutRequest) TimeoutTs() time.Time {
	return r.timeoutTs
}

func TestTimer(t *testing.T) {
	timerService := NewTimer[*mockTimeoutRequest]("test-timer")
	err := timerService.Start(context.Background())
	require.NoError(t, err)

	start := time.Now()
	require.True(t, timerService.Reset(&mockTimeoutRequest{id: 1, duration: time.Hour}))
	// replaces the pending request
	require.True(t, timerService.Reset(&mockTimeoutRequest{id: 2, duration: 50 * time.Millisecond}))

	select {
	case r := <-timerService.C():
		require.Equal(t, 2, r.id)
		require.False(t, r.TimeoutTs().Before(start))
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire")
	}

	timerService.Stop()
	timerService.Serve()
	require.False(t, timerService.IsRunning())
	require.False(t, timerService.Reset(&mockTimeoutRequest{id: 3, duration: time.Millisecond}))
}
