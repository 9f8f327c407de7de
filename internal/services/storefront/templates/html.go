package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/storefront/internal/platform/icons"
)

// markup accumulates escaped HTML for one component render.
type markup struct {
	strings.Builder
}

func (m *markup) raw(s string) {
	m.WriteString(s)
}

func (m *markup) text(s string) {
	m.WriteString(templ.EscapeString(s))
}

func (m *markup) attr(name string, value string) {
	m.attrs(templ.OrderedAttributes{{Key: name, Value: value}})
}

// attrs writes attributes in order. Writes to the builder cannot fail.
func (m *markup) attrs(a templ.OrderedAttributes) {
	_ = templ.RenderAttributes(context.Background(), &m.Builder, a)
}

func (m *markup) urlAttr(name string, value string) {
	m.attr(name, string(templ.URL(value)))
}

func (m *markup) icon(id icons.ID, class string) {
	m.raw(`<svg class="`)
	m.text(class)
	m.raw(`" aria-hidden="true" focusable="false"><use href="#`)
	m.text(icons.LucideSymbolID(icons.LucideNameOrDefault(id)))
	m.raw(`"></use></svg>`)
}

func (m *markup) flush(w io.Writer) error {
	_, err := io.WriteString(w, m.String())
	return err
}

// renderChildren writes the children attached to ctx by templ.WithChildren.
func renderChildren(ctx context.Context, w io.Writer) error {
	children := templ.GetChildren(ctx)
	if children == nil {
		return nil
	}
	return children.Render(templ.ClearChildren(ctx), w)
}

// swatchStyle is the inline style for a color swatch. Values the CSS
// sanitizer rejects render as templ's innocuous placeholder.
func swatchStyle(fill string) string {
	return string(templ.SanitizeCSS("background-color", strings.TrimSpace(fill)))
}
