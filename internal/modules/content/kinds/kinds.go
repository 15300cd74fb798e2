// Package kinds is the catalog of content kinds the submission form accepts.
package kinds

import "strings"

const (
	KindPost       = "post"
	KindPage       = "page"
	KindAttachment = "attachment"
)

// Kind describes a selectable content kind.
type Kind struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	// BlockEnvelope marks kinds whose body is wrapped in a paragraph block
	// when the draft is stored.
	BlockEnvelope bool `json:"-"`
	// internal kinds are never offered in the form dropdown
	internal bool
}

var catalog = []Kind{
	{Name: KindPost, Label: "Post", BlockEnvelope: true},
	{Name: KindPage, Label: "Page", BlockEnvelope: true},
	{Name: KindAttachment, Label: "Attachment", internal: true},
}

// ListPublic returns the kinds offered in the form dropdown, in catalog order.
func ListPublic() []Kind {
	out := make([]Kind, 0, len(catalog))
	for _, k := range catalog {
		if !k.internal {
			out = append(out, k)
		}
	}
	return out
}

// Lookup returns the kind by name.
func Lookup(name string) (Kind, bool) {
	for _, k := range catalog {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// Normalize lowercases and trims name, falling back to "post" when empty.
// Kinds outside the catalog are kept as given; they are stored without the
// paragraph block envelope.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return KindPost
	}
	return name
}

// HasBlockEnvelope reports whether drafts of this kind get the paragraph
// block wrapper.
func HasBlockEnvelope(name string) bool {
	k, ok := Lookup(name)
	return ok && k.BlockEnvelope
}
