package service

import (
	"context"
	"sync"
	"time"

	"links54_client/internal/api"
	"links54_client/pkg/bus"
	"links54_client/pkg/logger"

	"go.uber.org/zap"
)

// UnreadService 周期拉取未读计数并发布到事件总线，
// 订阅方通过 bus 感知变化（替代旧实现里挂在全局对象上的刷新钩子）。
type UnreadService struct {
	Client   *api.Client
	Bus      *bus.Bus
	Interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	stopped chan struct{}
}

func NewUnreadService(client *api.Client, b *bus.Bus, interval time.Duration) *UnreadService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &UnreadService{Client: client, Bus: b, Interval: interval}
}

// Start 幂等；启动后立即拉一次，之后按固定间隔轮询
func (s *UnreadService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.stopped = make(chan struct{})

	go func(stop, stopped chan struct{}) {
		defer close(stopped)

		s.RefreshNow()

		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.RefreshNow()
			case <-stop:
				return
			}
		}
	}(s.stop, s.stopped)
}

func (s *UnreadService) Stop() {
	s.mu.Lock()
	stop, stopped := s.stop, s.stopped
	s.stop, s.stopped = nil, nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-stopped
	}
}

// RefreshNow 即时刷新，对应子页面主动触发父布局重新计数的场景
func (s *UnreadService) RefreshNow() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counts, err := s.Client.GetUnreadCounts(ctx)
	if err != nil {
		logger.Log.Debug("unread counts fetch failed", zap.Error(err))
		return
	}

	s.Bus.Publish(bus.TopicUnreadSupports, counts.Supports)
	s.Bus.Publish(bus.TopicUnreadContacts, counts.Contacts)
}
