package markdown

import (
	"strings"
	"testing"
)

func TestToHTMLBasic(t *testing.T) {
	got := string(ToHTML("# Heading\n\nSome **bold** text."))

	if !strings.Contains(got, "<h1") {
		t.Errorf("missing heading in %q", got)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("missing bold in %q", got)
	}
}

func TestToHTMLEscapesRawHTML(t *testing.T) {
	got := string(ToHTML(`before <script>alert(1)</script> after`))

	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %q", got)
	}
}

func TestToHTMLAutolink(t *testing.T) {
	got := string(ToHTML("see https://example.com for more"))

	if !strings.Contains(got, `<a href="https://example.com"`) {
		t.Errorf("autolink missing in %q", got)
	}
}
