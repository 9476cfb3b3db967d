// Package core holds the ledger domain types and the entry grammar.
//
// This file parses the free-text entry format: a leading signed decimal
// amount followed by an optional comment, e.g. "150 awesome #burger and
// #cola". Hashtags inside the comment become the entry's tag set.
package core

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	entryRe = regexp.MustCompile(`(?s)^\s*(-?\d+(?:[.,]\d+)?)\s*(.*)$`)
	tagRe   = regexp.MustCompile(`#\w+`)
)

// ParsedEntry is the structured draft extracted from raw text before an
// Entry is created.
type ParsedEntry struct {
	Value   float64
	Comment string
	Tags    []string
}

// ParseEntry extracts a leading numeric amount and a trailing comment.
//
// The amount is an optionally negative integer or decimal literal; both dot
// and comma decimal separators are accepted. Everything after the amount is
// the comment, trimmed. Tags are every #word token found in the comment,
// deduplicated with insertion order preserved.
//
// Text with no leading amount fails with ErrMalformedEntry.
func ParseEntry(text string) (ParsedEntry, error) {
	m := entryRe.FindStringSubmatch(text)
	if m == nil {
		return ParsedEntry{}, ErrMalformedEntry
	}

	raw := strings.ReplaceAll(m[1], ",", ".")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ParsedEntry{}, ErrMalformedEntry
	}

	comment := strings.TrimSpace(m[2])

	return ParsedEntry{
		Value:   value,
		Comment: comment,
		Tags:    ExtractTags(comment),
	}, nil
}

// ExtractTags returns the deduplicated #word tokens found in text, in order
// of first appearance. Add and report share this pattern.
func ExtractTags(text string) []string {
	matches := tagRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, tag := range matches {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// HasAllTags reports whether the entry's tag set contains every tag in
// filter. An empty filter matches everything.
func (e Entry) HasAllTags(filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(e.Tags))
	for _, tag := range e.Tags {
		set[tag] = struct{}{}
	}
	for _, tag := range filter {
		if _, ok := set[tag]; !ok {
			return false
		}
	}
	return true
}
