package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type mockCallback struct {
	startErr error
	started  int
	stopped  int
	ctx      context.Context
}

func (m *mockCallback) OnStart(ctx context.Context) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.started++
	m.ctx = ctx
	return nil
}

func (m *mockCallback) OnStop() {
	m.stopped++
}

func TestSimpleService(t *testing.T) {
	cb := &mockCallback{}
	s := NewSimpleService("mock", cb)
	require.False(t, s.IsRunning())
	require.Nil(t, s.Done())

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	require.True(t, s.IsRunning())
	require.Equal(t, 1, cb.started)

	s.Stop()
	s.Stop()
	s.Serve()
	require.False(t, s.IsRunning())
	require.Equal(t, 1, cb.stopped)
	require.Error(t, cb.ctx.Err())
	require.ErrorIs(t, s.Start(context.Background()), ErrServiceAlreadyStopped)
}

func TestSimpleServiceParentCancel(t *testing.T) {
	cb := &mockCallback{}
	s := NewSimpleService("mock", cb)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop after parent cancellation")
	}
	require.False(t, s.IsRunning())
	require.Equal(t, 1, cb.stopped)
}

func TestSimpleServiceStartError(t *testing.T) {
	cb := &mockCallback{startErr: errors.New("boom")}
	s := NewSimpleService("mock", cb)
	require.EqualError(t, s.Start(context.Background()), "boom")
	require.False(t, s.IsRunning())
}
