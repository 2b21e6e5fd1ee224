package service

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	ErrServiceAlreadyStopped = errors.New("service already stopped")
)

type SimpleService struct {
	cancel      context.CancelFunc
	closeChan   chan struct{}
	mu          sync.Mutex
	startStopCb StartStopCallback
	log         *log.Entry
}

func NewSimpleService(name string, startStopCb StartStopCallback) *SimpleService {
	return &SimpleService{
		startStopCb: startStopCb,
		log:         log.WithFields(log.Fields{"service": name}),
	}
}

// Start runs OnStart once. Starting a running service is a no-op; a stopped
// service cannot be restarted.
func (s *SimpleService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closeChan != nil {
		select {
		case <-s.closeChan:
			return ErrServiceAlreadyStopped
		default:
			return nil
		}
	}
	wrappedCtx, cancel := context.WithCancel(ctx)
	if err := s.startStopCb.OnStart(wrappedCtx); err != nil {
		cancel()
		return err
	}
	closeChan := make(chan struct{})
	s.cancel = cancel
	s.closeChan = closeChan
	go func() {
		select {
		case <-closeChan:
		case <-ctx.Done():
			s.Stop()
		}
	}()
	s.log.Debug("service started")
	return nil
}

func (s *SimpleService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closeChan == nil {
		return false
	}
	select {
	case <-s.closeChan:
		return false
	default:
		return true
	}
}

func (s *SimpleService) Serve() {
	if ch := s.Done(); ch != nil {
		<-ch
	}
}

func (s *SimpleService) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeChan
}

func (s *SimpleService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closeChan == nil {
		return
	}
	select {
	case <-s.closeChan:
		return
	default:
		s.startStopCb.OnStop()
		s.cancel()
		close(s.closeChan)
		s.log.Debug("service stopped")
	}
}
