package printers

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"tableflip.dev/ami/pkg/report"
)

// MarkdownStyle picks a glamour style for the current terminal.
func MarkdownStyle() string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return "notty"
	}
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// Markdown renders md for the terminal, wrapped at width.
func Markdown(md, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

var html = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders md as an HTML fragment.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := html.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Panel prints a reflection or summary panel. Markdown goes through glamour
// unless AsHTML is set.
func (pp *PrettyPrint) Panel(p report.Panel, asHTML bool) error {
	if asHTML {
		return pp.panelHTML(p)
	}

	pp.Title(p.Title)
	if len(p.Items) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintf(pp.out(), "%s\n\n", p.Placeholder)
		return nil
	}

	style := MarkdownStyle()
	meta := color.New(color.Faint)
	heading := color.New(color.Bold)
	for _, it := range p.Items {
		if it.Heading != "" {
			_, _ = heading.Fprintln(pp.out(), it.Heading)
		}
		if it.Meta != "" {
			_, _ = meta.Fprintln(pp.out(), it.Meta)
		}
		body, err := Markdown(it.Markdown, style, pp.width())
		if err != nil {
			return fmt.Errorf("render %s: %w", p.Title, err)
		}
		_, _ = fmt.Fprintln(pp.out(), body)
		pp.NewLine()
	}
	return nil
}

func (pp *PrettyPrint) panelHTML(p report.Panel) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<section>\n<h2>%s</h2>\n", escape(p.Title))
	if len(p.Items) == 0 {
		fmt.Fprintf(&b, "<p><em>%s</em></p>\n", escape(p.Placeholder))
	}
	for _, it := range p.Items {
		b.WriteString("<article>\n")
		if it.Heading != "" {
			fmt.Fprintf(&b, "<h3>%s</h3>\n", escape(it.Heading))
		}
		if it.Meta != "" {
			fmt.Fprintf(&b, "<p class=\"meta\">%s</p>\n", escape(it.Meta))
		}
		body, err := HTML(it.Markdown)
		if err != nil {
			return fmt.Errorf("render %s: %w", p.Title, err)
		}
		b.WriteString(body)
		b.WriteString("</article>\n")
	}
	b.WriteString("</section>\n")
	_, err := fmt.Fprint(pp.out(), b.String())
	return err
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string {
	return escaper.Replace(s)
}
