package style

import (
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type markupTag struct {
	name    string
	pattern *regexp.Regexp
	style   lipgloss.Style
}

// MarkupParser renders [tag]text[/tag] markup with the matching style
type MarkupParser struct {
	tags []markupTag
}

// NewMarkupParser creates a parser for the tags backed by s
func NewMarkupParser(s Styles) *MarkupParser {
	p := &MarkupParser{}
	for tag, st := range map[string]lipgloss.Style{
		"title":    s.Title,
		"subtitle": s.Subtitle,
		"success":  s.Success,
		"error":    s.Error,
		"warning":  s.Warning,
		"info":     s.Info,
		"code":     s.Code,
		"path":     s.Path,
		"muted":    s.Muted,
		"bold":     s.Bold,
		"italic":   s.Italic,
	} {
		p.AddStyle(tag, st)
	}
	return p
}

// AddStyle registers or replaces a tag
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	t := markupTag{
		name:    tag,
		pattern: regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`),
		style:   style,
	}
	for i := range p.tags {
		if p.tags[i].name == tag {
			p.tags[i] = t
			return
		}
	}
	p.tags = append(p.tags, t)
	sort.Slice(p.tags, func(i, j int) bool { return p.tags[i].name < p.tags[j].name })
}

// Render processes markup text and returns styled output. Passes repeat until
// nothing changes, so nested tags are resolved too.
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		before := result
		for _, t := range p.tags {
			result = t.pattern.ReplaceAllStringFunc(result, func(match string) string {
				sub := t.pattern.FindStringSubmatch(match)
				if len(sub) != 2 {
					return match
				}
				return t.style.Render(sub[1])
			})
		}
		if result == before {
			return result
		}
	}
}

// RenderTemplate substitutes {{key}} placeholders and then renders markup
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return p.Render(result)
}
