package server

import "github.com/google/uuid"

// SessionID 每个连接独立生成，仅作为注册表键，不在会话之间暴露
type SessionID string

// NewSessionID 生成随机 UUIDv4
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}
