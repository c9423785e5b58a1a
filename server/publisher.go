package server

import "sync"

// Subscription 某个会话快照的订阅端；队列满时丢弃新快照，保证 Tick 不被阻塞
type Subscription struct {
	topic SessionID
	ch    chan []byte
}

// C 返回接收通道；Unsubscribe 后关闭
func (s *Subscription) C() <-chan []byte { return s.ch }

// Publisher 按会话 ID 扇出序列化后的快照
type Publisher struct {
	mu   sync.RWMutex
	subs map[SessionID]map[*Subscription]struct{}
}

func NewPublisher() *Publisher {
	return &Publisher{subs: make(map[SessionID]map[*Subscription]struct{})}
}

// Subscribe 订阅 topic，buf 为每个订阅者的队列长度
func (p *Publisher) Subscribe(topic SessionID, buf int) *Subscription {
	sub := &Subscription{topic: topic, ch: make(chan []byte, buf)}
	p.mu.Lock()
	defer p.mu.Unlock()
	set, ok := p.subs[topic]
	if !ok {
		set = make(map[*Subscription]struct{})
		p.subs[topic] = set
	}
	set[sub] = struct{}{}
	return sub
}

// Unsubscribe 取消订阅并关闭通道（可重复调用）
func (p *Publisher) Unsubscribe(sub *Subscription) {
	p.mu.Lock()
	defer p.mu.Unlock()
	set, ok := p.subs[sub.topic]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(p.subs, sub.topic)
	}
	close(sub.ch)
}

// Publish 非阻塞投递，返回送达与因队列满而丢弃的订阅者数量
func (p *Publisher) Publish(topic SessionID, msg []byte) (delivered, dropped int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for sub := range p.subs[topic] {
		select {
		case sub.ch <- msg:
			delivered++
		default:
			dropped++
		}
	}
	return delivered, dropped
}
