package postgres

import (
	"database/sql"
	"fmt"
	"math"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches wrapped 23505", func(t *testing.T) {
		err := fmt.Errorf("insert profile: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "42P01"}) {
			t.Fatalf("expected false for undefined table")
		}
		if isUniqueViolation(fakeErr("boom")) {
			t.Fatalf("expected false for plain error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
	if isNotFound(fakeErr("timeout")) {
		t.Fatalf("expected unrelated error not to match")
	}
}

func TestNullFloat(t *testing.T) {
	tests := []struct {
		name string
		in   sql.NullFloat64
		want float64
	}{
		{name: "null", in: sql.NullFloat64{}, want: 0},
		{name: "nan", in: sql.NullFloat64{Float64: math.NaN(), Valid: true}, want: 0},
		{name: "inf", in: sql.NullFloat64{Float64: math.Inf(1), Valid: true}, want: 0},
		{name: "value", in: sql.NullFloat64{Float64: 12.5, Valid: true}, want: 12.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nullFloat(tt.in); got != tt.want {
				t.Fatalf("unexpected value: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestOptionalString(t *testing.T) {
	if optionalString("   ") != nil {
		t.Fatalf("expected nil for blank input")
	}
	if got := optionalString(" cus_1 "); got == nil || *got != "cus_1" {
		t.Fatalf("unexpected value: %v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
