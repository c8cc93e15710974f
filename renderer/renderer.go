package renderer

import (
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/xiruizhao/cashflow-forecast"
)

// entryView is the template-facing projection of one entry.
type entryView struct {
	Desc     string
	Accounts string
	Start    string
	Rule     string
	Repeats  string
}

// EntriesMarkdown renders the entry list to a markdown string, balance entry
// first, each with a human-readable description of its recurrence.
func EntriesMarkdown(s *cashflow.Series) string {
	views := make([]entryView, 0, s.Len())
	for _, e := range s.Entries() {
		views = append(views, entryView{
			Desc:     e.Desc,
			Accounts: e.Accounts,
			Start:    e.DTStart.String(),
			Rule:     e.RRule,
			Repeats:  DescribeRule(e.RRule),
		})
	}
	partials := map[string]string{
		"entries_table": "entries_table.md",
	}
	return renderTemplate("entries", "entries.md", partials, views)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
