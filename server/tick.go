package server

import (
	"context"
	"errors"
	"time"

	"snakearena/game"
)

// Scheduler 为每个会话启动独立的定时推进循环
type Scheduler struct {
	interval  time.Duration
	registry  *Registry
	publisher *Publisher
	metrics   *Metrics
}

func NewScheduler(interval time.Duration, reg *Registry, pub *Publisher, m *Metrics) *Scheduler {
	return &Scheduler{interval: interval, registry: reg, publisher: pub, metrics: m}
}

// SessionLoop 单个会话循环的取消句柄，由连接层持有
type SessionLoop struct {
	id     SessionID
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop 取消循环并等待其退出；可重复调用
func (l *SessionLoop) Stop() {
	l.cancel()
	<-l.done
}

// Done 循环退出（被取消或会话已移除）时关闭
func (l *SessionLoop) Done() <-chan struct{} { return l.done }

// Start 启动循环：等待间隔 → 锁内更新 → 编码 → 发布
func (sc *Scheduler) Start(ctx context.Context, id SessionID, enc Encoder) *SessionLoop {
	ctx, cancel := context.WithCancel(ctx)
	l := &SessionLoop{id: id, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(l.done)
		ticker := time.NewTicker(sc.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				Log.Debugw("session loop cancelled", "session", id)
				return
			case <-ticker.C:
			}
			if !sc.tick(id, enc) {
				Log.Infow("session loop stopped: session gone", "session", id)
				return
			}
		}
	}()
	return l
}

// tick 推进一次；会话已不在注册表时返回 false
func (sc *Scheduler) tick(id SessionID, enc Encoder) bool {
	start := time.Now()
	var snap Snapshot
	err := sc.registry.WithSession(id, func(s *game.Session) {
		s.Update()
		snap = NewSnapshot(s)
	})
	if errors.Is(err, ErrSessionNotFound) {
		return false
	}
	sc.metrics.AddTick(time.Since(start))

	payload, err := enc.Encode(snap)
	if err != nil {
		sc.metrics.IncSerializeErrors()
		Log.Errorw("serialize snapshot failed", "session", id, "format", enc.Name(), "err", err)
		return true
	}
	delivered, dropped := sc.publisher.Publish(id, payload)
	sc.metrics.AddPublished(delivered)
	sc.metrics.AddDropped(dropped)
	if delivered == 0 {
		Log.Debugw("snapshot not delivered", "session", id, "dropped", dropped)
	}
	return true
}
