package game

import "testing"

func TestAdvanceWrapsAround(t *testing.T) {
	b := Bounds{Width: 10, Height: 8}
	cases := []struct {
		name string
		from Position
		dir  Direction
		want Position
	}{
		{"left edge", Position{0, 3}, Left, Position{9, 3}},
		{"right edge", Position{9, 3}, Right, Position{0, 3}},
		{"top edge", Position{4, 0}, Up, Position{4, 7}},
		{"bottom edge", Position{4, 7}, Down, Position{4, 0}},
		{"interior", Position{4, 4}, Right, Position{5, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Advance(tc.from, tc.dir, b); got != tc.want {
				t.Fatalf("Advance(%v, %v) = %v, want %v", tc.from, tc.dir, got, tc.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Fatalf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Fatalf("expected lower-case direction to be rejected")
	}
}
