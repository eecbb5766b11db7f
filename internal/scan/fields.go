package scan

import (
	"regexp"
	"strings"
)

var (
	// Course codes are a parenthesized run of 5+ alphanumerics, e.g. "(10MA1)".
	codePattern = regexp.MustCompile(`\(([A-Za-z0-9]{5,})\)`)

	// Rooms are a capital letter, optional space, digits, e.g. "M07" or "A 12".
	roomPattern = regexp.MustCompile(`\b[A-Z]\s?\d+\b`)

	// Teachers are a title followed by one or two capitalized words.
	teacherPattern = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Miss|Dr|Prof(?:essor)?)\.?\s+[A-Z][A-Za-z'-]+(?:\s+[A-Z][A-Za-z'-]+)?`)

	spaceRun = regexp.MustCompile(`\s+`)
)

// Fields holds the four extractable components of a class description.
type Fields struct {
	Subject string
	Code    string
	Room    string
	Teacher string
}

// ExtractCourseCode returns the first parenthesized run of at least five
// alphanumeric characters, without the parentheses. Empty when none.
func ExtractCourseCode(text string) string {
	m := codePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractRoom returns the first room-shaped token that is not part of the
// course code.
func ExtractRoom(text string) string {
	codeSpan := codePattern.FindStringIndex(text)
	for _, span := range roomPattern.FindAllStringIndex(text, -1) {
		if codeSpan != nil && span[0] < codeSpan[1] && span[1] > codeSpan[0] {
			continue
		}
		return strings.ReplaceAll(text[span[0]:span[1]], " ", "")
	}
	return ""
}

// ExtractTeacher returns the first title-plus-name run ("Mr Smith",
// "Professor Anne Brown"). Empty when none.
func ExtractTeacher(text string) string {
	return teacherPattern.FindString(text)
}

// ExtractSubject returns the text with the course code, room, and teacher
// substrings stripped, whitespace collapsed. May be empty.
func ExtractSubject(text string) string {
	out := codePattern.ReplaceAllString(text, " ")
	out = teacherPattern.ReplaceAllString(out, " ")

	// Remove the room only where it would have been extracted, so subjects
	// like "3D Design" are not mangled by stripping every room-shaped token.
	if room := roomPattern.FindString(out); room != "" {
		out = strings.Replace(out, room, " ", 1)
	}

	out = spaceRun.ReplaceAllString(out, " ")
	return strings.Trim(out, " \t-–—,")
}

// ExtractFields runs all four extractors over one piece of text. Every
// parser ends with this call, so the bundling keeps call sites uniform.
func ExtractFields(text string) Fields {
	return Fields{
		Subject: ExtractSubject(text),
		Code:    ExtractCourseCode(text),
		Room:    ExtractRoom(text),
		Teacher: ExtractTeacher(text),
	}
}
