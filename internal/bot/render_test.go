package bot

import (
	"strings"
	"testing"
	"time"

	"kopilka/internal/core"
)

func TestRenderReport(t *testing.T) {
	d1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	got := renderReport([]core.DayTotal{
		{Date: d1, Sum: 15},
		{Date: d2, Sum: 3.5},
	})

	want := strings.Join([]string{
		"Report for last week:",
		"",
		"| date       | amount |",
		"| ---------- | ------ |",
		"| 2024-06-01 | 15     |",
		"| 2024-06-02 | 3.5    |",
	}, "\n")

	if got != want {
		t.Errorf("renderReport() =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderReport_Empty(t *testing.T) {
	if got := renderReport(nil); got != "No entries for last week" {
		t.Errorf("renderReport(nil) = %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{150, "150"},
		{12.5, "12.5"},
		{-30, "-30"},
		{0, "0"},
		{0.01, "0.01"},
	}

	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
