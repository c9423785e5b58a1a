package game

import (
	"testing"
	"time"
)

func TestAutoplay(t *testing.T) {
	cases := []struct {
		name    string
		body    []Position
		heading Direction
		food    Position
		want    Direction
	}{
		{"close horizontal gap", []Position{{5, 5}}, Right, Position{8, 5}, Right},
		{"horizontal reversal falls back to vertical", []Position{{5, 5}}, Right, Position{2, 8}, Down},
		{"aligned on x", []Position{{5, 5}}, Right, Position{5, 1}, Up},
		{"blocked on both axes uses first free", []Position{{5, 5}}, Right, Position{2, 5}, Up},
		{"first free skips body", []Position{{5, 5}, {5, 4}, {5, 6}}, Left, Position{5, 5}, Left},
		{"no free cell keeps heading", []Position{{5, 5}, {5, 4}, {5, 6}, {4, 5}, {6, 5}}, Down, Position{5, 5}, Down},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Snake{body: tc.body, heading: tc.heading, now: time.Now}
			if got := Autoplay(s, tc.food, testBounds); got != tc.want {
				t.Fatalf("Autoplay = %v, want %v", got, tc.want)
			}
		})
	}
}
