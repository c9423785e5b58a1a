package game

import (
	"testing"

	"golang.org/x/exp/rand"
)

func newTestSession(seed uint64) *Session {
	rules := DefaultRules()
	rules.Bounds = testBounds
	return NewSession(rules, WithRand(rand.New(rand.NewSource(seed))))
}

func TestNewSessionSpawnsAtCenter(t *testing.T) {
	s := newTestSession(1)
	if s.Snake().Head() != (Position{5, 5}) || s.Snake().Len() != 1 {
		t.Fatalf("unexpected spawn %v", s.Snake().Body())
	}
	if f := s.Food(); f.X < 0 || f.X >= 10 || f.Y < 0 || f.Y >= 10 {
		t.Fatalf("food out of bounds: %v", f)
	}
}

func TestUpdateEatsFood(t *testing.T) {
	s := newTestSession(1)
	s.food = Position{6, 5}

	s.Update()
	if s.Snake().Head() != (Position{6, 5}) {
		t.Fatalf("expected head at (6,5), got %v", s.Snake().Head())
	}
	if s.Score() != 10 || s.Currency() != 1 {
		t.Fatalf("expected score=10 currency=1, got %d/%d", s.Score(), s.Currency())
	}
	if s.Snake().Len() != 1 || !s.Snake().Growing() {
		t.Fatalf("growth must be pending, len=%d growing=%v", s.Snake().Len(), s.Snake().Growing())
	}

	s.Update()
	if s.Snake().Len() != 2 {
		t.Fatalf("expected length 2 on the tick after eating, got %d", s.Snake().Len())
	}
	if s.GameOver() {
		t.Fatalf("unexpected game over")
	}
}

func TestFoodIsResampledAfterEating(t *testing.T) {
	moved := 0
	const trials = 50
	for seed := uint64(1); seed <= trials; seed++ {
		s := newTestSession(seed)
		s.food = Position{6, 5}
		s.Update()
		if s.Food() != (Position{6, 5}) {
			moved++
		}
	}
	if moved < trials*9/10 {
		t.Fatalf("food resampled away in only %d/%d trials", moved, trials)
	}
}

func TestCollisionFreezesThenRespawns(t *testing.T) {
	s := newTestSession(1)
	s.food = Position{0, 0}
	s.snake.body = []Position{{5, 5}, {5, 6}, {6, 6}, {6, 5}, {6, 4}}
	s.snake.heading = Right
	before := s.Snake().Body()

	s.Update()
	if !s.GameOver() {
		t.Fatalf("expected game over")
	}
	after := s.Snake().Body()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("body changed on collision")
		}
	}

	s.AddCurrency(3)
	s.Update()
	if s.GameOver() {
		t.Fatalf("game over must clear on the next tick")
	}
	if s.Deaths() != 1 {
		t.Fatalf("expected 1 death, got %d", s.Deaths())
	}
	if s.Snake().Len() != 1 || s.Snake().Head() != (Position{5, 5}) {
		t.Fatalf("expected fresh snake at center, got %v", s.Snake().Body())
	}
	if s.Currency() != 3 {
		t.Fatalf("currency must survive respawn, got %d", s.Currency())
	}
}

func TestAutoplayLatchesAfterThreshold(t *testing.T) {
	s := newTestSession(1)
	for i := 1; i <= 5; i++ {
		s.gameOver = true
		s.Update()
		if i < 5 && s.AutoplayEnabled() {
			t.Fatalf("autoplay enabled after %d deaths", i)
		}
	}
	if !s.AutoplayEnabled() {
		t.Fatalf("autoplay must be enabled after 5 deaths")
	}
	s.gameOver = true
	s.Update()
	if !s.AutoplayEnabled() || s.Deaths() != 6 {
		t.Fatalf("autoplay must stay enabled, deaths=%d", s.Deaths())
	}
}

func TestAutoplaySteersTowardFood(t *testing.T) {
	s := newTestSession(1)
	s.autoplay = true
	s.food = Position{5, 8}
	s.Update()
	if s.Snake().Heading() != Down || s.Snake().Head() != (Position{5, 6}) {
		t.Fatalf("expected autoplay to steer Down, got %v at %v", s.Snake().Heading(), s.Snake().Head())
	}
}

func TestTrainingRecordsRequestedDirections(t *testing.T) {
	clk := newFakeClock()
	rules := DefaultRules()
	rules.Bounds = testBounds
	s := NewSession(rules, WithRand(rand.New(rand.NewSource(1))), WithClock(clk.now))
	s.SetDirection(Up)
	if len(s.RecordedMoves()) != 0 {
		t.Fatalf("moves recorded outside training mode")
	}

	s.SetTraining(true)
	if s.SetDirection(Left) {
		t.Fatalf("expected Left to be debounced")
	}
	clk.advance(DefaultTurnDebounce)
	if s.SetDirection(Down) {
		t.Fatalf("expected reversal to be rejected")
	}
	moves := s.RecordedMoves()
	if len(moves) != 2 || moves[0] != Left || moves[1] != Down {
		t.Fatalf("unexpected recorded moves %v", moves)
	}

	s.SetTraining(false)
	if len(s.RecordedMoves()) != 2 {
		t.Fatalf("turning training off must keep the log")
	}
	s.SetTraining(true)
	if len(s.RecordedMoves()) != 0 {
		t.Fatalf("turning training on must clear the log")
	}
}

func TestTrainingLogIsCapped(t *testing.T) {
	rules := DefaultRules()
	rules.Bounds = testBounds
	rules.MaxRecordedMoves = 3
	s := NewSession(rules, WithRand(rand.New(rand.NewSource(1))))
	s.SetTraining(true)
	for _, d := range []Direction{Up, Down, Left, Right, Up} {
		s.SetDirection(d)
	}
	moves := s.RecordedMoves()
	want := []Direction{Left, Right, Up}
	if len(moves) != len(want) {
		t.Fatalf("expected %d recorded moves, got %v", len(want), moves)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Fatalf("recorded moves = %v, want %v", moves, want)
		}
	}
}
