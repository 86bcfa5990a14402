// Package sanitize strips unsafe markup from user-supplied message bodies.
// Allowed inline tags survive, everything else is removed while its text
// content is kept, and only http/https/mailto links pass through. Stored and
// broadcast bodies must never contain unsanitized markup.
package sanitize

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

var allowedTags = map[string]bool{
	"b": true, "i": true, "u": true, "em": true, "strong": true,
	"a": true, "p": true, "br": true, "ul": true, "ol": true, "li": true,
}

var allowedAttrs = map[string]map[string]bool{
	"a": {"href": true, "title": true, "target": true},
}

var allowedSchemes = map[string]bool{
	"http": true, "https": true, "mailto": true,
}

// HTML returns a sanitized copy of input. The transform is idempotent.
func HTML(input string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(input))

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF, or a tokenizer error on pathological input; either way
			// only what was already emitted is returned.
			return b.String()
		case html.TextToken:
			b.WriteString(html.EscapeString(string(z.Text())))
		case html.StartTagToken:
			writeTag(&b, z.Token(), false)
		case html.SelfClosingTagToken:
			writeTag(&b, z.Token(), true)
		case html.EndTagToken:
			if tok := z.Token(); allowedTags[tok.Data] {
				b.WriteString("</" + tok.Data + ">")
			}
		}
		// Comments and doctypes are dropped.
	}
}

func writeTag(b *strings.Builder, tok html.Token, selfClosing bool) {
	if !allowedTags[tok.Data] {
		return
	}

	b.WriteString("<" + tok.Data)
	for _, attr := range tok.Attr {
		if !allowedAttrs[tok.Data][attr.Key] {
			continue
		}
		if attr.Key == "href" && !safeURL(attr.Val) {
			continue
		}
		b.WriteString(" " + attr.Key + `="` + html.EscapeString(attr.Val) + `"`)
	}
	if selfClosing {
		b.WriteString("/>")
	} else {
		b.WriteString(">")
	}
}

func safeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return true
	}
	return allowedSchemes[strings.ToLower(u.Scheme)]
}
