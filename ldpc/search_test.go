package ldpc

import (
	"context"
	"errors"
	"testing"

	"github.com/nathanhack/ldpc/tanner"
)

func TestSearch(t *testing.T) {
	b := newTestBuilder(11)
	best, girth, err := Search(context.Background(), b, []int{24, 12, 3}, Gallager, 5, 0, false)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	if best == nil {
		t.Fatalf("expected a code")
	}
	if actual := tanner.Girth(context.Background(), best.Graph, 0); actual != girth {
		t.Fatalf("expected reported girth %v to match %v", girth, actual)
	}
	if !best.IsRegular(6, 3) {
		t.Fatalf("expected a regular code")
	}
}

func TestSearch_Errors(t *testing.T) {
	b := newTestBuilder(1)
	if _, _, err := Search(context.Background(), b, []int{6, 3, 2}, Gallager, 3, 0, false); !errors.Is(err, ErrUnconstructible) {
		t.Fatalf("expected ErrUnconstructible but found %v", err)
	}
	if _, _, err := Search(context.Background(), b, []int{12, 6, 2}, Gallager, 0, 0, false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput but found %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Search(ctx, b, []int{12, 6, 2}, Gallager, 3, 0, false); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled but found %v", err)
	}
}

func TestBetter(t *testing.T) {
	tests := []struct {
		a, b     int
		expected bool
	}{
		{-1, 4, true},
		{4, -1, false},
		{-1, -1, false},
		{6, 4, true},
		{4, 6, false},
		{4, 4, false},
	}
	for _, test := range tests {
		if actual := better(test.a, test.b); actual != test.expected {
			t.Fatalf("better(%v,%v): expected %v but found %v", test.a, test.b, test.expected, actual)
		}
	}
}
