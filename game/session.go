package game

import (
	"time"

	"golang.org/x/exp/rand"
)

// Rules 单局规则参数
type Rules struct {
	Bounds            Bounds
	TurnDebounce      time.Duration
	AutoplayThreshold int // 累计死亡达到该次数后永久开启自动驾驶
	FoodScore         int
	MaxRecordedMoves  int // 训练记录上限，0 为不限
}

// DefaultRules 30x30 棋盘，50ms 防抖，5 次死亡后自动驾驶，每个食物 10 分，最多记录 1000 步
func DefaultRules() Rules {
	return Rules{
		Bounds:            Bounds{Width: 30, Height: 30},
		TurnDebounce:      DefaultTurnDebounce,
		AutoplayThreshold: 5,
		FoodScore:         10,
		MaxRecordedMoves:  1000,
	}
}

// Session 一个玩家的完整私有对局
type Session struct {
	rules Rules
	rng   *rand.Rand
	now   func() time.Time

	snake    *Snake
	food     Position
	score    int
	currency int
	gameOver bool
	training bool
	moves    []Direction
	deaths   int
	autoplay bool
}

type Option func(*Session)

// WithRand 指定食物刷新用的随机源
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithClock 指定转向防抖使用的时钟
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession 在棋盘中心出生，食物随机放置
func NewSession(rules Rules, opts ...Option) *Session {
	s := &Session{rules: rules, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	s.snake = NewSnake(rules.Bounds.Center(), rules.TurnDebounce, s.now)
	s.food = s.randomCell()
	return s
}

// Update 推进一个 Tick
func (s *Session) Update() {
	if s.gameOver {
		s.deaths++
		if s.deaths >= s.rules.AutoplayThreshold {
			s.autoplay = true
		}
		s.gameOver = false
		s.snake = NewSnake(s.rules.Bounds.Center(), s.rules.TurnDebounce, s.now)
		return
	}

	if s.autoplay {
		s.snake.SetDirection(Autoplay(s.snake, s.food, s.rules.Bounds))
	}

	if !s.snake.MoveForward(s.rules.Bounds) {
		s.gameOver = true
		return
	}

	if s.snake.Head() == s.food {
		s.snake.Grow()
		s.score += s.rules.FoodScore
		s.currency++
		// 不重试：新食物偶尔会落在蛇身上
		s.food = s.randomCell()
	}
}

// SetDirection 玩家转向；训练模式下记录请求的方向（无论是否被接受），超出上限丢弃最旧的一条
func (s *Session) SetDirection(d Direction) bool {
	accepted := s.snake.SetDirection(d)
	if s.training {
		if limit := s.rules.MaxRecordedMoves; limit > 0 && len(s.moves) >= limit {
			n := copy(s.moves, s.moves[len(s.moves)-limit+1:])
			s.moves = s.moves[:n]
		}
		s.moves = append(s.moves, d)
	}
	return accepted
}

// SetTraining 切换训练记录模式，开启时清空记录
func (s *Session) SetTraining(on bool) {
	s.training = on
	if on {
		s.moves = s.moves[:0]
	}
}

// AddCurrency 管理接口发放货币
func (s *Session) AddCurrency(n int) { s.currency += n }

func (s *Session) Snake() *Snake         { return s.snake }
func (s *Session) Food() Position        { return s.food }
func (s *Session) Score() int            { return s.score }
func (s *Session) Currency() int         { return s.currency }
func (s *Session) GameOver() bool        { return s.gameOver }
func (s *Session) Training() bool        { return s.training }
func (s *Session) Deaths() int           { return s.deaths }
func (s *Session) AutoplayEnabled() bool { return s.autoplay }
func (s *Session) Rules() Rules          { return s.rules }

// RecordedMoves 返回训练记录副本
func (s *Session) RecordedMoves() []Direction {
	out := make([]Direction, len(s.moves))
	copy(out, s.moves)
	return out
}

func (s *Session) randomCell() Position {
	return Position{
		X: s.rng.Intn(s.rules.Bounds.Width),
		Y: s.rng.Intn(s.rules.Bounds.Height),
	}
}
