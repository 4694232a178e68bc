// internal/render/render.go

// Package render turns composed documents into markup. The markdown output
// is data driven: every value comes from the section data slices the
// assembler prepared, and numbering is printed straight from each section's
// position and total.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"pitchforge/internal/composer/assembler"
	"pitchforge/internal/composer/contentfit"
	"pitchforge/internal/composer/projection"
	"pitchforge/pkg/registry"
)

// Renderer produces markup for composed documents and their sections.
type Renderer interface {
	RenderSection(section assembler.Section) (string, error)
	RenderDocument(doc *assembler.ComposedDocument) (string, error)
	RenderHTML(doc *assembler.ComposedDocument) (string, error)
}

// Markdown renders documents as markdown, with section titles taken from a
// section catalog.
type Markdown struct {
	catalog *registry.SectionCatalog
}

// NewMarkdown builds a markdown renderer. A nil catalog falls back to the
// built-in default.
func NewMarkdown(catalog *registry.SectionCatalog) *Markdown {
	if catalog == nil {
		catalog = registry.DefaultCatalog()
	}
	return &Markdown{catalog: catalog}
}

// RenderDocument renders every section in plan order, separated by rules.
func (m *Markdown) RenderDocument(doc *assembler.ComposedDocument) (string, error) {
	parts := make([]string, 0, len(doc.Sections))
	for _, section := range doc.Sections {
		md, err := m.RenderSection(section)
		if err != nil {
			return "", fmt.Errorf("render section %s: %w", section.ID, err)
		}
		parts = append(parts, md)
	}
	return strings.Join(parts, "\n\n---\n\n") + "\n", nil
}

// RenderSection renders one section: a title heading, the position line, and
// the section body. Section IDs without a body template still render their
// heading so numbering stays visibly intact.
func (m *Markdown) RenderSection(section assembler.Section) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", m.catalog.Title(section.ID))
	fmt.Fprintf(&b, "_Section %d of %d_\n", section.Position, section.Total)

	body := sectionBody(section.ID, section.Data)
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

// RenderBody renders just the section body, without the title heading or
// position line. Outreach delivery uses this: an email carries its subject
// in the envelope, not a markdown heading.
func (m *Markdown) RenderBody(section assembler.Section) string {
	return sectionBody(section.ID, section.Data)
}

// RenderHTML converts the markdown rendering to HTML.
func (m *Markdown) RenderHTML(doc *assembler.ComposedDocument) (string, error) {
	md, err := m.RenderDocument(doc)
	if err != nil {
		return "", err
	}
	return ToHTML(md)
}

// ToHTML converts markdown to HTML.
func ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ==========================
// Data Slice Accessors
// ==========================

// Section data arrives either as the assembler built it or after a JSON
// round trip through storage, so every accessor tolerates both shapes.

func str(data map[string]interface{}, key string) string {
	v, ok := data[key]
	if !ok {
		return ""
	}
	return contentfit.Coerce(v)
}

func num(data map[string]interface{}, key string) float64 {
	v, ok := data[key]
	if !ok {
		return 0
	}
	return projection.SafeNumber(v, 0, 0)
}

func strs(data map[string]interface{}, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := contentfit.Coerce(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func obj(data map[string]interface{}, key string) map[string]interface{} {
	if v, ok := data[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func objs(data map[string]interface{}, key string) []map[string]interface{} {
	switch v := data[key].(type) {
	case []map[string]interface{}:
		return v
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(v))
		for _, item := range v {
			if entry, ok := item.(map[string]interface{}); ok {
				out = append(out, entry)
			}
		}
		return out
	default:
		return nil
	}
}
