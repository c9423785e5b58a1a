package server

import (
	"encoding/json"
	"fmt"

	"snakearena/game"
)

const (
	ActionDirection      = "direction"
	ActionToggleTraining = "toggle_ml_training"
)

// ClientMessage 入站 JSON 消息
// 示例：{"action":"direction","direction":"Up"}
//
//	{"action":"toggle_ml_training","ml_training":true}
type ClientMessage struct {
	Action     string  `json:"action"`
	Direction  *string `json:"direction,omitempty"`
	MLTraining *bool   `json:"ml_training,omitempty"`
}

type IntentKind int

const (
	IntentNone IntentKind = iota // 未知动作或缺少字段，忽略
	IntentDirection
	IntentTraining
)

// Intent 客户端意图，在会话锁内通过 Apply 生效
type Intent struct {
	Kind      IntentKind
	Action    string
	Direction game.Direction
	Training  bool
}

// DecodeIntent 解析一帧入站消息；只有 JSON 损坏或方向值非法才返回错误
func DecodeIntent(payload []byte) (Intent, error) {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Intent{}, fmt.Errorf("decode client message: %w", err)
	}
	in := Intent{Kind: IntentNone, Action: msg.Action}
	switch msg.Action {
	case ActionDirection:
		if msg.Direction == nil {
			return in, nil
		}
		d, err := game.ParseDirection(*msg.Direction)
		if err != nil {
			return Intent{}, err
		}
		in.Kind = IntentDirection
		in.Direction = d
	case ActionToggleTraining:
		if msg.MLTraining == nil {
			return in, nil
		}
		in.Kind = IntentTraining
		in.Training = *msg.MLTraining
	}
	return in, nil
}

// Apply 作用于会话；返回转向是否被接受（训练切换总是 true）
func (in Intent) Apply(s *game.Session) bool {
	switch in.Kind {
	case IntentDirection:
		return s.SetDirection(in.Direction)
	case IntentTraining:
		s.SetTraining(in.Training)
		return true
	}
	return false
}
