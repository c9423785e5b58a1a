package game

// Autoplay 贪心对齐：先水平后垂直靠近食物，都不行时取第一个不撞身的方向。
// 无前瞻，不保证存活；无路可走时保持当前朝向，交给下一次移动判死。
func Autoplay(s *Snake, food Position, b Bounds) Direction {
	head := s.Head()
	heading := s.Heading()

	if head.X != food.X {
		want := Left
		if food.X > head.X {
			want = Right
		}
		if heading != want.Opposite() {
			return want
		}
	}
	if head.Y != food.Y {
		want := Up
		if food.Y > head.Y {
			want = Down
		}
		if heading != want.Opposite() {
			return want
		}
	}

	for _, d := range Directions {
		if !s.Occupies(Advance(head, d, b)) {
			return d
		}
	}
	return heading
}
