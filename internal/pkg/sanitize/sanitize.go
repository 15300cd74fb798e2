// Package sanitize normalizes untrusted form input before it reaches
// persistence. SafeText produces plain single-line text, SafeMultiline keeps
// inline markup but removes active content.
package sanitize

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// SafeText strips all markup from s, collapses runs of whitespace into a
// single space and trims the result. Used for titles and other plain fields.
func SafeText(s string) string {
	return strings.Join(strings.Fields(StripTags(s)), " ")
}

// SafeMultiline removes script/style elements and control characters from s
// while keeping inline markup and line breaks intact. Used for body content.
func SafeMultiline(s string) string {
	cleaned := dropActiveContent(s)
	var b strings.Builder
	b.Grow(len(cleaned))
	for _, r := range cleaned {
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r == '\r' || unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// StripTags removes every HTML tag from s, returning the concatenated text
// content. Script and style bodies are dropped entirely.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	skipDepth := 0
	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isActiveElement(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isActiveElement(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
			}
		}
	}
}

// dropActiveContent re-renders s without script/style elements or comments,
// keeping all other markup as-is.
func dropActiveContent(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	skipDepth := 0
	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			if isActiveElement(string(name)) {
				if tokenType == html.StartTagToken {
					skipDepth++
				}
				continue
			}
			if skipDepth == 0 {
				b.Write(tokenizer.Raw())
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isActiveElement(string(name)) {
				if skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			if skipDepth == 0 {
				b.Write(tokenizer.Raw())
			}
		case html.CommentToken:
			// dropped
		default:
			if skipDepth == 0 {
				b.Write(tokenizer.Raw())
			}
		}
	}
}

func isActiveElement(name string) bool {
	switch strings.ToLower(name) {
	case "script", "style", "iframe", "object", "embed":
		return true
	}
	return false
}
