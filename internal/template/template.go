package template

import (
	"regexp"
	"strings"
)

// Placeholder is the canonical token replaced with the document text.
const Placeholder = "{{content}}"

// DefaultTemplate is used whenever the configured prompt is blank.
const DefaultTemplate = `Generate a concise, descriptive title for the note below.
Respond with the title only: no quotes, no trailing punctuation, no explanation.
Keep it under 10 words and in the same language as the note.

Note:
{{content}}`

// placeholderRe matches {{content}} case-insensitively with optional
// whitespace inside the braces, e.g. "{{ Content }}".
var placeholderRe = regexp.MustCompile(`(?i)\{\{\s*content\s*\}\}`)

// Render substitutes content for every placeholder occurrence in tmpl.
// Content is inserted verbatim. A blank tmpl falls back to DefaultTemplate.
func Render(tmpl, content string) string {
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultTemplate
	}
	return placeholderRe.ReplaceAllLiteralString(tmpl, content)
}

// HasPlaceholder reports whether tmpl references the document content at all.
func HasPlaceholder(tmpl string) bool {
	return placeholderRe.MatchString(tmpl)
}

// Name identifies a built-in prompt preset.
type Name string

const (
	// Default is the built-in template
	Default Name = "default"
	// Concise asks for a very short title
	Concise Name = "concise"
	// Descriptive allows a longer, more specific title
	Descriptive Name = "descriptive"
	// Question phrases the title as the question the note answers
	Question Name = "question"
	// Keywords produces a keyword-style title
	Keywords Name = "keywords"
)

// Preset is a named prompt body that can be copied into the custom prompt.
type Preset struct {
	Name        Name
	Description string
	Prompt      string
}

// Presets returns every built-in preset in display order.
func Presets() []Preset {
	return []Preset{
		defaultPreset(),
		concisePreset(),
		descriptivePreset(),
		questionPreset(),
		keywordsPreset(),
	}
}

// GetPreset returns the preset matching name. Unknown names yield the default
// preset and ok=false.
func GetPreset(name string) (Preset, bool) {
	switch Name(normalizeName(name)) {
	case Default:
		return defaultPreset(), true
	case Concise:
		return concisePreset(), true
	case Descriptive:
		return descriptivePreset(), true
	case Question:
		return questionPreset(), true
	case Keywords:
		return keywordsPreset(), true
	default:
		return defaultPreset(), false
	}
}

// normalizeName converts user input to a canonical preset name
func normalizeName(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "default", "standard", "builtin", "built-in":
		return string(Default)
	case "concise", "short", "brief":
		return string(Concise)
	case "descriptive", "long", "detailed":
		return string(Descriptive)
	case "question", "questions", "faq":
		return string(Question)
	case "keywords", "keyword", "tags":
		return string(Keywords)
	default:
		return v
	}
}

func defaultPreset() Preset {
	return Preset{
		Name:        Default,
		Description: "Concise, descriptive title in the note's language",
		Prompt:      DefaultTemplate,
	}
}

func concisePreset() Preset {
	return Preset{
		Name:        Concise,
		Description: "Three to five words",
		Prompt: `Write a title of three to five words for the note below.
Output only the title.

{{content}}`,
	}
}

func descriptivePreset() Preset {
	return Preset{
		Name:        Descriptive,
		Description: "Specific title up to 15 words naming the main subject and outcome",
		Prompt: `Read the note below and write a specific title of at most 15 words that names
its main subject and, if there is one, its conclusion or outcome.
Output only the title, without quotes.

{{content}}`,
	}
}

func questionPreset() Preset {
	return Preset{
		Name:        Question,
		Description: "Title phrased as the question the note answers",
		Prompt: `Phrase a short title for the note below as the question the note answers.
Output only the question.

{{content}}`,
	}
}

func keywordsPreset() Preset {
	return Preset{
		Name:        Keywords,
		Description: "Two to four keywords separated by spaces",
		Prompt: `List the two to four most important keywords of the note below, separated by
single spaces, most important first. Output only the keywords.

{{content}}`,
	}
}
