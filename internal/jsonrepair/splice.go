package jsonrepair

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	daysArrayPattern    = regexp.MustCompile(`"days?"\s*:\s*(\[[^\]]*\])`)
	periodsArrayPattern = regexp.MustCompile(`"periods?"\s*:\s*(\[[^\]]*\])`)
	dayBlockPattern     = regexp.MustCompile(`"(Day\s*\d+)"\s*:\s*\{`)
)

// spliceFragments rebuilds a parseable document from independently extracted
// pieces: the days array, the periods array, and every "Day N" class block
// that survived intact. Day blocks with no balanced closing structure before
// the truncation point are discarded; a class object cut off mid-string is
// dropped rather than corrupting the whole document.
func spliceFragments(text string) string {
	days := "[]"
	if m := daysArrayPattern.FindStringSubmatch(text); m != nil {
		days = m[1]
	}
	periods := "[]"
	if m := periodsArrayPattern.FindStringSubmatch(text); m != nil {
		periods = m[1]
	}

	var blocks []string
	for _, loc := range dayBlockPattern.FindAllStringSubmatchIndex(text, -1) {
		label := text[loc[2]:loc[3]]
		// loc[1] is just past the opening brace; back up one so the
		// balanced scan starts on it.
		block := balancedObject(text[loc[1]-1:])
		if block == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("%q: %s", label, block))
	}

	if days == "[]" && periods == "[]" && len(blocks) == 0 {
		return ""
	}

	return fmt.Sprintf(`{"days": %s, "periods": %s, "classes": {%s}}`,
		applyFixups(days), applyFixups(periods), strings.Join(blocks, ", "))
}
