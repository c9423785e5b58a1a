package game

// Position 网格坐标，按值比较
type Position struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

// Bounds 棋盘尺寸（环形，出界从对侧进入）
type Bounds struct {
	Width  int
	Height int
}

// Center 出生点
func (b Bounds) Center() Position {
	return Position{X: b.Width / 2, Y: b.Height / 2}
}

// Advance 沿 dir 前进一格并按边界取非负模
func Advance(p Position, dir Direction, b Bounds) Position {
	switch dir {
	case Up:
		p.Y--
	case Down:
		p.Y++
	case Left:
		p.X--
	case Right:
		p.X++
	}
	return Position{X: floorMod(p.X, b.Width), Y: floorMod(p.Y, b.Height)}
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
