package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"snakearena/game"
)

var ErrUnknownFormat = errors.New("unknown snapshot format")

// SnakeView 蛇的线上表示
type SnakeView struct {
	Body      []game.Position `json:"body" msgpack:"body"`
	Direction string          `json:"direction" msgpack:"direction"`
	Growing   bool            `json:"growing" msgpack:"growing"`
}

// Snapshot 每个 Tick 下发的完整会话状态（无增量）
type Snapshot struct {
	Snake           SnakeView     `json:"snake" msgpack:"snake"`
	Food            game.Position `json:"food" msgpack:"food"`
	Score           int           `json:"score" msgpack:"score"`
	Primeagems      int           `json:"primeagems" msgpack:"primeagems"`
	GameOver        bool          `json:"game_over" msgpack:"game_over"`
	MLTraining      bool          `json:"ml_training" msgpack:"ml_training"`
	BotMoves        []string      `json:"bot_moves" msgpack:"bot_moves"`
	DeathCount      int           `json:"death_count" msgpack:"death_count"`
	AutoplayEnabled bool          `json:"autoplay_enabled" msgpack:"autoplay_enabled"`
}

// NewSnapshot 复制会话状态，调用方须持有该会话的锁
func NewSnapshot(s *game.Session) Snapshot {
	moves := s.RecordedMoves()
	botMoves := make([]string, len(moves))
	for i, d := range moves {
		botMoves[i] = d.String()
	}
	snake := s.Snake()
	return Snapshot{
		Snake: SnakeView{
			Body:      snake.Body(),
			Direction: snake.Heading().String(),
			Growing:   snake.Growing(),
		},
		Food:            s.Food(),
		Score:           s.Score(),
		Primeagems:      s.Currency(),
		GameOver:        s.GameOver(),
		MLTraining:      s.Training(),
		BotMoves:        botMoves,
		DeathCount:      s.Deaths(),
		AutoplayEnabled: s.AutoplayEnabled(),
	}
}

// Encoder 快照编码器；MessageType 决定 WebSocket 帧类型
type Encoder interface {
	Encode(Snapshot) ([]byte, error)
	MessageType() int
	Name() string
}

type jsonEncoder struct{}

func (jsonEncoder) Encode(s Snapshot) ([]byte, error) { return json.Marshal(s) }
func (jsonEncoder) MessageType() int                  { return websocket.TextMessage }
func (jsonEncoder) Name() string                      { return "json" }

type msgpackEncoder struct{}

func (msgpackEncoder) Encode(s Snapshot) ([]byte, error) { return msgpack.Marshal(&s) }
func (msgpackEncoder) MessageType() int                  { return websocket.BinaryMessage }
func (msgpackEncoder) Name() string                      { return "msgpack" }

// EncoderFor 按 ?format= 选择编码，空值为 JSON
func EncoderFor(format string) (Encoder, error) {
	switch format {
	case "", "json":
		return jsonEncoder{}, nil
	case "msgpack":
		return msgpackEncoder{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
