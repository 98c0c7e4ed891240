package util

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

// Calendar descriptions arrive as HTML fragments. These patterns cover
// the subset providers actually emit; anything unrecognized is stripped.
var (
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	anchorRe      = regexp.MustCompile(`(?i)<a\s[^>]*href\s*=\s*["']([^"']*)["'][^>]*>`)
	anchorCloseRe = regexp.MustCompile(`(?i)</a\s*>`)
	brRe          = regexp.MustCompile(`(?i)<br\s*/?\s*>`)
	blockOpenRe   = regexp.MustCompile(`(?i)<(?:p|div|h[1-6]|blockquote|pre|table|tr)(?:\s[^>]*)?\s*>`)
	blockCloseRe  = regexp.MustCompile(`(?i)</(?:p|div|h[1-6]|blockquote|pre|table|tr)\s*>`)
	liOpenRe      = regexp.MustCompile(`(?i)<li(?:\s[^>]*)?\s*>`)
	liCloseRe     = regexp.MustCompile(`(?i)</li\s*>`)
	listWrapRe    = regexp.MustCompile(`(?i)</?(?:ul|ol)(?:\s[^>]*)?\s*>`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
	spacesRe      = regexp.MustCompile(`[^\S\n]+`)
)

// HTMLToText converts an HTML fragment to readable terminal text. Links
// become clickable OSC 8 hyperlinks truncated to width, block elements
// and list items become line breaks and bullets, entities are decoded.
// Pass width <= 0 to skip link truncation.
func HTMLToText(s string, width int) string {
	if s == "" {
		return s
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	// Structure first: block elements and lists to line breaks
	s = brRe.ReplaceAllString(s, "\n")
	s = blockCloseRe.ReplaceAllString(s, "\n\n")
	s = blockOpenRe.ReplaceAllString(s, "\n")
	s = listWrapRe.ReplaceAllString(s, "")
	s = liOpenRe.ReplaceAllString(s, "\n  • ")
	s = liCloseRe.ReplaceAllString(s, "")

	s = convertLinks(s, width)

	// Whatever tag survived is noise
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	return tidyWhitespace(s)
}

// convertLinks replaces every <a href>…</a> with a clickable terminal
// hyperlink. Google redirect wrappers are unwrapped to the real target.
func convertLinks(s string, maxWidth int) string {
	for {
		aLoc := anchorRe.FindStringSubmatchIndex(s)
		if aLoc == nil {
			return s
		}

		href := unwrapRedirect(s[aLoc[2]:aLoc[3]])
		afterOpen := s[aLoc[1]:]

		closeLoc := anchorCloseRe.FindStringIndex(afterOpen)
		if closeLoc == nil {
			// Unclosed anchor, drop the opening tag and keep going
			s = s[:aLoc[0]] + afterOpen
			continue
		}

		text := strings.TrimSpace(tagRe.ReplaceAllString(afterOpen[:closeLoc[0]], ""))
		if text == "" {
			text = href
		}
		if maxWidth > 0 {
			text = TruncateText(text, maxWidth)
		}

		s = s[:aLoc[0]] + MakeHyperlink(href, text) + afterOpen[closeLoc[1]:]
	}
}

// unwrapRedirect extracts the target from Google redirect URLs of the
// form https://www.google.com/url?q=REAL_URL&…
func unwrapRedirect(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.Host == "www.google.com" && u.Path == "/url" {
		if q := u.Query().Get("q"); q != "" {
			return q
		}
	}
	return rawURL
}

// tidyWhitespace collapses space runs, trims each line while keeping
// bullet indentation, and caps blank runs at one empty line.
func tidyWhitespace(s string) string {
	s = spacesRe.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "• ") {
			lines[i] = "  " + trimmed
		} else {
			lines[i] = trimmed
		}
	}
	s = strings.Join(lines, "\n")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
