// Package prompts holds the extraction prompt sent to the AI collaborator.
package prompts

import (
	"strings"
	"text/template"
)

// extractText asks for the canonical JSON shape with a worked example. The
// raw timetable text is appended as the final section so models with weak
// instruction-following still see the shape immediately before the data.
const extractText = `You convert school timetable text into JSON. Return ONLY one JSON object, no markdown, no commentary.

The object must have exactly this shape:

{
  "days": ["Day 1", "Day 2"],
  "periods": [
    {"name": "Period 1", "startTime": "8:35am", "endTime": "9:35am"}
  ],
  "classes": {
    "Day 1": {
      "Period 1": [
        {"subject": "Math", "code": "10MA1", "room": "M07", "teacher": "Mr Smith", "startTime": "8:35am", "endTime": "9:35am"}
      ]
    }
  }
}

Rules:
- Times are 12-hour with lowercase am/pm and no leading zero ("8:35am").
- Use "Day N" labels. Map weekday names onto the cycle (Monday = Day 1).
- Every class needs subject and code when present in the text; leave unknown fields as empty strings.
- Do not invent classes that are not in the text.

Timetable text:

{{.Input}}
`

var extractTemplate = template.Must(template.New("extract").Parse(extractText))

// ExtractionPrompt renders the extraction prompt for the given raw text.
func ExtractionPrompt(input string) (string, error) {
	var sb strings.Builder
	if err := extractTemplate.Execute(&sb, struct{ Input string }{Input: input}); err != nil {
		return "", err
	}
	return sb.String(), nil
}
