package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantValue   float64
		wantComment string
		wantTags    []string
	}{
		{
			name:        "integer amount with comment",
			text:        "150 awesome #burger and #cola",
			wantValue:   150,
			wantComment: "awesome #burger and #cola",
			wantTags:    []string{"#burger", "#cola"},
		},
		{
			name:      "amount only",
			text:      "42",
			wantValue: 42,
		},
		{
			name:        "decimal amount",
			text:        "12.50 lunch",
			wantValue:   12.5,
			wantComment: "lunch",
		},
		{
			name:        "comma decimal separator",
			text:        "12,50 lunch",
			wantValue:   12.5,
			wantComment: "lunch",
		},
		{
			name:        "negative amount",
			text:        "-300 refund #shoes",
			wantValue:   -300,
			wantComment: "refund #shoes",
			wantTags:    []string{"#shoes"},
		},
		{
			name:      "zero amount",
			text:      "0 placeholder",
			wantValue: 0, wantComment: "placeholder",
		},
		{
			name:        "leading whitespace",
			text:        "   99 coffee",
			wantValue:   99,
			wantComment: "coffee",
		},
		{
			name:        "duplicate tags deduplicated",
			text:        "10 #a #a #b",
			wantValue:   10,
			wantComment: "#a #a #b",
			wantTags:    []string{"#a", "#b"},
		},
		{
			name:        "multiline comment",
			text:        "25 first line\nsecond #line",
			wantValue:   25,
			wantComment: "first line\nsecond #line",
			wantTags:    []string{"#line"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntry(tt.text)
			if err != nil {
				t.Fatalf("ParseEntry(%q) error = %v", tt.text, err)
			}
			if got.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", got.Value, tt.wantValue)
			}
			if got.Comment != tt.wantComment {
				t.Errorf("Comment = %q, want %q", got.Comment, tt.wantComment)
			}
			if !reflect.DeepEqual(got.Tags, tt.wantTags) {
				t.Errorf("Tags = %v, want %v", got.Tags, tt.wantTags)
			}
		})
	}
}

func TestParseEntry_Malformed(t *testing.T) {
	tests := []string{
		"",
		"hello #tag",
		"lunch 150",
		"#food 20",
		"--5 double minus",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			_, err := ParseEntry(text)
			if !errors.Is(err, ErrMalformedEntry) {
				t.Errorf("ParseEntry(%q) error = %v, want ErrMalformedEntry", text, err)
			}
		})
	}
}

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"no tags", "just a comment", nil},
		{"single tag", "lunch #food", []string{"#food"}},
		{"duplicates removed", "#a #a #b", []string{"#a", "#b"}},
		{"order preserved", "#z then #a then #z", []string{"#z", "#a"}},
		{"tag stops at punctuation", "#food, #to-go", []string{"#food", "#to"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTags(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTags(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestEntryHasAllTags(t *testing.T) {
	entry := Entry{Tags: []string{"#food", "#lunch"}}

	tests := []struct {
		name   string
		filter []string
		want   bool
	}{
		{"empty filter matches", nil, true},
		{"subset matches", []string{"#food"}, true},
		{"full set matches", []string{"#food", "#lunch"}, true},
		{"missing tag rejects", []string{"#transport"}, false},
		{"partial overlap rejects", []string{"#food", "#transport"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entry.HasAllTags(tt.filter); got != tt.want {
				t.Errorf("HasAllTags(%v) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}
