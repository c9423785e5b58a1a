package game

import (
	"errors"
	"fmt"
)

// ErrUnknownDirection 无法识别的方向字符串
var ErrUnknownDirection = errors.New("unknown direction")

// Direction 蛇头朝向
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions 自动驾驶兜底时的固定评估顺序
var Directions = [4]Direction{Up, Down, Left, Right}

// Opposite 返回反方向
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection 解析线上格式 "Up"/"Down"/"Left"/"Right"
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "Up":
		return Up, nil
	case "Down":
		return Down, nil
	case "Left":
		return Left, nil
	case "Right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if d < Up || d > Right {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
