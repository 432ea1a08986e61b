package prompts

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Built-in styles. A YAML style file may add to or override these.
var builtin = map[string]Style{
	"summary": {
		Template: "Summarize the following video transcript section. Start with a single title line " +
			"capturing the topic, then give a concise summary of the main points in plain prose. " +
			"Keep technical terms as they appear.\n\nTranscript:\n---\n" + Placeholder + "\n---",
		TitleLine: true,
	},
	"questions-and-answers": {
		Template: "Read the following video transcript section and produce a list of the questions " +
			"it answers, each followed by the answer given in the transcript. Use markdown with the " +
			"question in bold.\n\nTranscript:\n---\n" + Placeholder + "\n---",
	},
	"key-points": {
		Template: "Extract the key points from the following video transcript section as a markdown " +
			"bullet list. One point per bullet, bold the central term of each point.\n\nTranscript:\n---\n" +
			Placeholder + "\n---",
	},
	"chapter-notes": {
		Template: "Turn the following video transcript section into study notes: markdown headings " +
			"for each subtopic, short explanatory paragraphs, and a final \"Important notes\" section " +
			"if the transcript contains warnings or caveats.\n\nTranscript:\n---\n" + Placeholder + "\n---",
	},
}

type implStore struct {
	styles map[string]Style
}

// New builds a Store from the built-in styles, overlaid with the optional
// YAML style file at path (name -> {template, title_line}).
func New(path string) (Store, error) {
	styles := make(map[string]Style, len(builtin))
	for name, s := range builtin {
		styles[name] = s
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read style file: %w", err)
		}
		var extra map[string]Style
		if err := yaml.Unmarshal(data, &extra); err != nil {
			return nil, fmt.Errorf("parse style file: %w", err)
		}
		for name, s := range extra {
			styles[name] = s
		}
	}

	for name, s := range styles {
		if err := validateTemplate(s.Template); err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
	}

	return &implStore{styles: styles}, nil
}

func validateTemplate(tpl string) error {
	switch strings.Count(tpl, Placeholder) {
	case 0:
		return fmt.Errorf("template has no %s placeholder", Placeholder)
	case 1:
		return nil
	default:
		return fmt.Errorf("template has more than one %s placeholder", Placeholder)
	}
}

func (s *implStore) Get(name string) (Style, error) {
	style, ok := s.styles[name]
	if !ok {
		return Style{}, fmt.Errorf("unknown style %q (available: %s)", name, strings.Join(s.Names(), ", "))
	}
	return style, nil
}

func (s *implStore) Names() []string {
	names := make([]string, 0, len(s.styles))
	for name := range s.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
