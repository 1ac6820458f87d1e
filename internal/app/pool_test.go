package app

import (
	"testing"

	"buzzer-board-service/internal/domain"
)

func testBoard() domain.Board {
	return domain.Board{
		ID:    "board-1",
		Title: "Test Board",
		Categories: []domain.Category{
			{
				Name: "Geography",
				Questions: map[int]domain.Question{
					10: {Prompt: "Capital of France?", Answers: []string{"Paris", "Berlin", "Rome", "Madrid"}, CorrectIndex: 0},
					20: {Prompt: "River through Budapest?", Answers: []string{"Danube", "Elbe", "Thames"}, CorrectIndex: 0},
					30: {Prompt: "Continent with the most countries?", Answers: []string{"Africa", "Europe", "Asia"}, CorrectIndex: 0},
				},
			},
			{
				Name: "Science",
				Questions: map[int]domain.Question{
					10: {Prompt: "Chemical formula of water?", Answers: []string{"CO2", "H2O", "NaCl"}, CorrectIndex: 1},
				},
			},
		},
	}
}

func TestTryConsumeSucceedsAtMostOnce(t *testing.T) {
	pool := newQuestionPool(testBoard())

	if !pool.tryConsume("Geography", 10) {
		t.Fatalf("expected first consume to succeed")
	}
	if pool.tryConsume("Geography", 10) {
		t.Fatalf("expected second consume to fail")
	}
	if pool.tryConsume("Geography", 99) {
		t.Fatalf("expected consume of unknown points to fail")
	}
	if pool.tryConsume("History", 10) {
		t.Fatalf("expected consume of unknown category to fail")
	}
}

func TestPoolPartitionInvariant(t *testing.T) {
	pool := newQuestionPool(testBoard())

	pool.tryConsume("geography", 20) // lookups fold case

	available := pool.availablePoints("Geography")
	if len(available) != 2 || available[0] != 10 || available[1] != 30 {
		t.Fatalf("expected available {10,30}, got %v", available)
	}
	if !pool.isAvailable("Geography", 10) || pool.isAvailable("Geography", 20) {
		t.Fatalf("expected 10 available and 20 answered")
	}
}

func TestHasAnyAvailable(t *testing.T) {
	pool := newQuestionPool(testBoard())

	if !pool.hasAnyAvailable() {
		t.Fatalf("expected available questions on fresh pool")
	}
	for _, points := range []int{10, 20, 30} {
		pool.tryConsume("Geography", points)
	}
	if !pool.hasAnyAvailable() {
		t.Fatalf("expected Science to still have questions")
	}
	pool.tryConsume("Science", 10)
	if pool.hasAnyAvailable() {
		t.Fatalf("expected exhausted pool")
	}
}
