package core

import (
	"testing"
	"time"
)

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "truncates time of day",
			in:   time.Date(2024, 6, 15, 18, 30, 12, 0, time.UTC),
			want: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "normalizes zone before truncating",
			in:   time.Date(2024, 6, 16, 2, 0, 0, 0, loc), // 21:00 UTC on the 15th
			want: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Day(tt.in); !got.Equal(tt.want) {
				t.Errorf("Day(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCurrencyIsValid(t *testing.T) {
	if !RUB.IsValid() {
		t.Error("RUB should be a valid currency")
	}
	if Currency("XYZ").IsValid() {
		t.Error("unknown code should not be valid")
	}
}
