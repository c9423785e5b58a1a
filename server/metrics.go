package server

import (
	"sync/atomic"
	"time"
)

// Metrics 记录运行期的关键指标（用于监控与调试）
type Metrics struct {
	SessionsOpened     int64
	SessionsClosed     int64
	TickCount          int64
	TotalTickNs        int64 // Tick 累计耗时（纳秒，仅统计加锁更新部分）
	InputsAccepted     int64 // 被接受的转向/切换
	InputsRejected     int64 // 因掉头或防抖被拒绝的转向
	InputsMalformed    int64 // JSON 损坏或方向非法
	InputsIgnored      int64 // 未知动作或缺字段
	SnapshotsPublished int64
	SnapshotsDropped   int64 // 订阅队列满被丢弃
	SerializeErrors    int64
}

func (m *Metrics) IncSessionsOpened()  { atomic.AddInt64(&m.SessionsOpened, 1) }
func (m *Metrics) IncSessionsClosed()  { atomic.AddInt64(&m.SessionsClosed, 1) }
func (m *Metrics) IncInputsAccepted()  { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *Metrics) IncInputsRejected()  { atomic.AddInt64(&m.InputsRejected, 1) }
func (m *Metrics) IncInputsMalformed() { atomic.AddInt64(&m.InputsMalformed, 1) }
func (m *Metrics) IncInputsIgnored()   { atomic.AddInt64(&m.InputsIgnored, 1) }
func (m *Metrics) IncSerializeErrors() { atomic.AddInt64(&m.SerializeErrors, 1) }
func (m *Metrics) AddPublished(n int)  { atomic.AddInt64(&m.SnapshotsPublished, int64(n)) }
func (m *Metrics) AddDropped(n int)    { atomic.AddInt64(&m.SnapshotsDropped, int64(n)) }
func (m *Metrics) AddTick(d time.Duration) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, d.Nanoseconds())
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *Metrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	opened := atomic.LoadInt64(&m.SessionsOpened)
	closed := atomic.LoadInt64(&m.SessionsClosed)
	return map[string]any{
		"sessions_opened":     opened,
		"sessions_closed":     closed,
		"sessions_active":     opened - closed,
		"tick_count":          tick,
		"avg_tick_ms":         avgMs,
		"inputs_accepted":     atomic.LoadInt64(&m.InputsAccepted),
		"inputs_rejected":     atomic.LoadInt64(&m.InputsRejected),
		"inputs_malformed":    atomic.LoadInt64(&m.InputsMalformed),
		"inputs_ignored":      atomic.LoadInt64(&m.InputsIgnored),
		"snapshots_published": atomic.LoadInt64(&m.SnapshotsPublished),
		"snapshots_dropped":   atomic.LoadInt64(&m.SnapshotsDropped),
		"serialize_errors":    atomic.LoadInt64(&m.SerializeErrors),
	}
}
