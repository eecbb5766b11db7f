// Package jsonrepair extracts a candidate timetable from unreliable JSON
// text. Model output arrives wrapped in prose or markdown, truncated
// mid-object, or with relaxed syntax. Repair never fails; the worst input
// degrades to the default skeleton.
package jsonrepair

import (
	"regexp"
	"strings"

	"github.com/calweir/timegrid/internal/timetable"
)

var (
	fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyPattern       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	singleQuotePattern   = regexp.MustCompile(`'([^']*)'`)
)

// RepairAndParse extracts a candidate timetable from raw text. Repair tiers
// are tried in order, cheapest first:
//
//  1. strip code fences and control characters, parse directly
//  2. textual fixups: trailing commas, bare keys, single quotes
//  3. extract the first brace-balanced object
//  4. splice independently regex-extracted days/periods/day-block fragments
//
// If every tier fails the default skeleton is returned.
func RepairAndParse(raw string) *timetable.Timetable {
	cleaned := stripControl(stripFences(raw))

	for _, candidate := range []string{
		cleaned,
		applyFixups(cleaned),
		balancedObject(cleaned),
		applyFixups(balancedObject(cleaned)),
		spliceFragments(cleaned),
	} {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		if t, ok := decodeCandidate(candidate); ok {
			return t
		}
	}

	return timetable.DefaultSkeleton()
}

// stripFences returns the content of the first markdown code fence when one
// exists, otherwise the input unchanged.
func stripFences(text string) string {
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	// Unterminated fence: drop everything through the fence marker.
	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			return rest[nl+1:]
		}
	}
	return text
}

// stripControl removes control characters that break json.Unmarshal while
// keeping the whitespace JSON allows between tokens.
func stripControl(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, text)
}

// applyFixups repairs the relaxed-JSON habits models fall into: trailing
// commas before closing brackets, unquoted object keys, and single-quoted
// strings. The single-quote conversion is deliberately naive.
func applyFixups(text string) string {
	if text == "" {
		return ""
	}
	out := trailingCommaPattern.ReplaceAllString(text, "$1")
	out = bareKeyPattern.ReplaceAllString(out, `$1"$2":`)
	out = singleQuotePattern.ReplaceAllString(out, `"$1"`)
	return out
}
