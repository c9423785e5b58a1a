package game

import "time"

// DefaultTurnDebounce 两次转向之间的最小间隔
const DefaultTurnDebounce = 50 * time.Millisecond

// Snake 蛇身（头在前）、朝向与待生长标记
//
// 自碰检测包含当前尾格：即使尾巴本 Tick 会让出，撞上尾格依然判定死亡。
type Snake struct {
	body     []Position
	heading  Direction
	growing  bool
	lastTurn time.Time

	debounce time.Duration
	now      func() time.Time
}

// NewSnake 在 start 处创建单格蛇，初始朝右
func NewSnake(start Position, debounce time.Duration, now func() time.Time) *Snake {
	if now == nil {
		now = time.Now
	}
	return &Snake{
		body:     []Position{start},
		heading:  Right,
		debounce: debounce,
		now:      now,
	}
}

func (s *Snake) Head() Position     { return s.body[0] }
func (s *Snake) Heading() Direction { return s.heading }
func (s *Snake) Growing() bool      { return s.growing }
func (s *Snake) Len() int           { return len(s.body) }

// Body 返回蛇身副本（头在前）
func (s *Snake) Body() []Position {
	out := make([]Position, len(s.body))
	copy(out, s.body)
	return out
}

// Occupies 判断 p 是否落在蛇身上
func (s *Snake) Occupies(p Position) bool {
	for _, c := range s.body {
		if c == p {
			return true
		}
	}
	return false
}

// MoveForward 前进一格；撞到自身返回 false 且不修改状态
func (s *Snake) MoveForward(b Bounds) bool {
	next := Advance(s.Head(), s.heading, b)
	if s.Occupies(next) {
		return false
	}
	s.body = append(s.body, Position{})
	copy(s.body[1:], s.body)
	s.body[0] = next
	if !s.growing {
		s.body = s.body[:len(s.body)-1]
	}
	s.growing = false
	return true
}

// Grow 标记下一次成功移动时加长一格
func (s *Snake) Grow() { s.growing = true }

// SetDirection 尝试转向；180° 掉头或距上次转向不足 debounce 时静默拒绝
func (s *Snake) SetDirection(d Direction) bool {
	if d == s.heading.Opposite() {
		return false
	}
	now := s.now()
	if !s.lastTurn.IsZero() && now.Sub(s.lastTurn) < s.debounce {
		return false
	}
	s.heading = d
	s.lastTurn = now
	return true
}
