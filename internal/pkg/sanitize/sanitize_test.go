package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeTextStripsMarkupAndCollapsesWhitespace(t *testing.T) {
	req := require.New(t)

	// Given a title containing markup and messy whitespace
	in := "  <b>Hello</b>\n\t <i>world</i>  "

	// When it is sanitized as plain text
	out := SafeText(in)

	// Then markup is gone and whitespace is collapsed
	req.Equal("Hello world", out)
}

func TestSafeTextDropsScriptBodies(t *testing.T) {
	req := require.New(t)

	out := SafeText(`before<script>alert("x")</script>after`)

	req.Equal("beforeafter", out)
}

func TestSafeTextPassesPlainStringsThrough(t *testing.T) {
	req := require.New(t)

	req.Equal("Just a title", SafeText("Just a title"))
}

func TestSafeMultilineKeepsInlineMarkup(t *testing.T) {
	req := require.New(t)

	// Given body content with inline formatting
	in := "say <b>hi</b> to <em>everyone</em>"

	// When sanitized for multiline content
	out := SafeMultiline(in)

	// Then the inline tags survive
	req.Equal("say <b>hi</b> to <em>everyone</em>", out)
}

func TestSafeMultilineRemovesActiveContent(t *testing.T) {
	req := require.New(t)

	in := "intro\n<script>steal()</script>\n<style>p{}</style>outro"

	out := SafeMultiline(in)

	req.NotContains(out, "script")
	req.NotContains(out, "steal")
	req.NotContains(out, "style")
	req.Contains(out, "intro")
	req.Contains(out, "outro")
}

func TestSafeMultilinePreservesNewlinesStripsControlChars(t *testing.T) {
	req := require.New(t)

	in := "line one\r\nline two\x00\x07end"

	out := SafeMultiline(in)

	req.Equal("line one\nline twoend", out)
}

func TestStripTagsHandlesNestedElements(t *testing.T) {
	req := require.New(t)

	out := StripTags("<div><p>one <span>two</span></p></div>")

	req.Equal("one two", out)
}
