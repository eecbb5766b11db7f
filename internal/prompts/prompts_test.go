package prompts

import (
	"reflect"
	"regexp"
	"sort"
	"strings"
	"testing"
)

func TestExtractionPrompt(t *testing.T) {
	input := "Day 1\nPeriod 1\nMathematics (10MA1)"

	prompt, err := ExtractionPrompt(input)
	if err != nil {
		t.Fatalf("ExtractionPrompt() error = %v", err)
	}

	if !strings.Contains(prompt, input) {
		t.Error("prompt does not contain the input text")
	}
	if !strings.Contains(prompt, `"classes"`) {
		t.Error("prompt does not show the expected JSON shape")
	}
	if !strings.HasSuffix(strings.TrimSpace(prompt), strings.TrimSpace(input)) {
		t.Error("input should be the final section of the prompt")
	}
	if strings.Contains(prompt, "{{") {
		t.Error("prompt contains unrendered template syntax")
	}
}

// TestTemplateVariables guards the template contract: ExtractionPrompt
// supplies exactly one variable, so the template must declare exactly
// {{.Input}}.
func TestTemplateVariables(t *testing.T) {
	if got := templateVariables(extractText); !reflect.DeepEqual(got, []string{"Input"}) {
		t.Errorf("template variables = %v, want [Input]", got)
	}
}

var variablePattern = regexp.MustCompile(`\{\{\s*\.([a-zA-Z_][a-zA-Z0-9_.]*)\s*\}\}`)

// templateVariables returns the sorted, deduped variable names referenced
// by a Go template string.
func templateVariables(text string) []string {
	seen := map[string]bool{}
	var vars []string
	for _, m := range variablePattern.FindAllStringSubmatch(text, -1) {
		if len(m) > 1 && !seen[m[1]] {
			seen[m[1]] = true
			vars = append(vars, m[1])
		}
	}
	sort.Strings(vars)
	return vars
}
