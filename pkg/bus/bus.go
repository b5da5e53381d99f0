package bus

import (
	"sync"
)

// 统一的主题常量，替代散落各处的全局刷新钩子
const (
	TopicUnreadSupports = "unread.supports"
	TopicUnreadContacts = "unread.contacts"
)

type Event struct {
	Topic string
	Data  interface{}
}

// Bus 进程内发布订阅。订阅者持有只读 channel，退订后由总线负责关闭。
type Bus struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

func New() *Bus {
	return &Bus{
		subs: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe 返回事件 channel 和退订函数。channel 带缓冲，
// 发布采用非阻塞发送，消费不及时会丢事件而不是卡住发布方。
func (b *Bus) Subscribe(topic string) (<-chan Event, func()) {
	ch := make(chan Event, 8)

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[chan Event]struct{})
	}
	b.subs[topic][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[topic], ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (b *Bus) Publish(topic string, data interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[topic] {
		select {
		case ch <- Event{Topic: topic, Data: data}:
		default:
		}
	}
}

// SubscriberCount 仅供测试与诊断
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
