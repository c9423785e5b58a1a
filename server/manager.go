package server

import (
	"errors"
	"sync"

	"snakearena/game"
)

var (
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")
)

// Registry 管理所有在线会话；对单个会话的读写只能通过 WithSession 在锁内完成
type Registry struct {
	mu       sync.RWMutex
	sessions map[SessionID]*entry
}

type entry struct {
	mu      sync.Mutex
	session *game.Session
	removed bool
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[SessionID]*entry)}
}

// Create 新建会话；id 已存在时返回 ErrSessionExists
func (r *Registry) Create(id SessionID, rules game.Rules, opts ...game.Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; ok {
		return ErrSessionExists
	}
	r.sessions[id] = &entry{session: game.NewSession(rules, opts...)}
	return nil
}

// WithSession 在该会话的互斥锁内执行 fn；会话不存在或已移除时返回 ErrSessionNotFound。
// fn 不得把 *game.Session 保存到锁外。
func (r *Registry) WithSession(id SessionID, fn func(*game.Session)) error {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return ErrSessionNotFound
	}
	fn(e.session)
	return nil
}

// Remove 幂等移除；返回是否真的删除了会话
func (r *Registry) Remove(id SessionID) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return false
	}
	// 等待进行中的 WithSession 结束，之后的调用都会看到 removed
	e.mu.Lock()
	e.removed = true
	e.mu.Unlock()
	return true
}

// Len 当前会话数
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Each 依次在锁内访问每个会话（用于管理接口）
func (r *Registry) Each(fn func(SessionID, *game.Session)) {
	r.mu.RLock()
	ids := make([]SessionID, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	for _, id := range ids {
		_ = r.WithSession(id, func(s *game.Session) { fn(id, s) })
	}
}
