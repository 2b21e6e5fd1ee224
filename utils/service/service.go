package service

import (
	"context"
)

type Service interface {
	Start(ctx context.Context) error
	IsRunning() bool
	// Serve blocks until the service stops.
	Serve()
	Stop()
	// Done is closed once the service stops. It is nil before Start.
	Done() <-chan struct{}
}

// StartStopCallback is implemented by the owner of a SimpleService. OnStart
// receives a context that is cancelled when the service stops. OnStop runs
// with the service lock held and must not call back into the service.
type StartStopCallback interface {
	OnStart(ctx context.Context) error
	OnStop()
}
