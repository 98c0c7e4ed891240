package util

import (
	"strings"
	"testing"
)

func TestHTMLToText_Blocks(t *testing.T) {
	in := `<p>Agenda</p><ul><li>review</li><li>plan</li></ul>`
	got := HTMLToText(in, 0)

	want := "Agenda\n\n  • review\n  • plan"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestHTMLToText_EntitiesAndTags(t *testing.T) {
	got := HTMLToText(`<b>Q&amp;A</b> session<br>room 3`, 0)
	want := "Q&A session\nroom 3"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestHTMLToText_Links(t *testing.T) {
	got := HTMLToText(`see <a href="https://example.com/doc">the doc</a>`, 0)

	if !strings.Contains(got, "https://example.com/doc") {
		t.Errorf("link target lost: %q", got)
	}
	if !strings.Contains(got, "the doc") {
		t.Errorf("link text lost: %q", got)
	}
	if strings.Contains(got, "<a") {
		t.Errorf("anchor tag left behind: %q", got)
	}
}

func TestHTMLToText_UnwrapsGoogleRedirect(t *testing.T) {
	in := `<a href="https://www.google.com/url?q=https://real.example/x&sa=D">link</a>`
	got := HTMLToText(in, 0)

	if !strings.Contains(got, "https://real.example/x") {
		t.Errorf("redirect not unwrapped: %q", got)
	}
	if strings.Contains(got, "www.google.com/url") {
		t.Errorf("wrapper URL survived: %q", got)
	}
}

func TestHTMLToText_CollapsesBlankRuns(t *testing.T) {
	got := HTMLToText("<p>a</p><p></p><p></p><p>b</p>", 0)
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank run not collapsed: %q", got)
	}
}

func TestTruncateText(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 8, "this is…"},
		{"no limit", 0, "no limit"},
		{"ünïcodé string", 5, "ünïc…"},
	}
	for _, tc := range cases {
		if got := TruncateText(tc.in, tc.max); got != tc.want {
			t.Errorf("TruncateText(%q, %d): want %q, got %q", tc.in, tc.max, tc.want, got)
		}
	}
}

func TestMakeHyperlink(t *testing.T) {
	got := MakeHyperlink("https://example.com", "text")
	if !strings.Contains(got, "https://example.com") || !strings.Contains(got, "text") {
		t.Errorf("malformed hyperlink: %q", got)
	}
	if !strings.HasPrefix(got, "\033]8;;") {
		t.Errorf("missing OSC 8 prefix: %q", got)
	}
}
