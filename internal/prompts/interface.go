package prompts

import "strings"

// Placeholder marks where the chunk text is substituted into a template.
const Placeholder = "{text}"

// Style is one prompt template. TitleLine declares that the template asks the
// model for a leading title line, which the merger elevates to the document
// title.
type Style struct {
	Template  string `yaml:"template"`
	TitleLine bool   `yaml:"title_line"`
}

// Render substitutes the chunk text into the template.
func (s Style) Render(chunk string) string {
	return strings.Replace(s.Template, Placeholder, chunk, 1)
}

// Store resolves style names to prompt templates.
type Store interface {
	Get(name string) (Style, error)
	Names() []string
}
