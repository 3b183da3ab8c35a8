package entity

// PostRef points at one published post found on the profile page.
type PostRef struct {
	Permalink string
}

// PostRecord is the editable content of one post as read from its edit page.
type PostRecord struct {
	SequenceNumber string
	Title          string
	URL            string
	Tags           string // raw input value, unparsed
	Text           string // raw markup, not rendered HTML
}

// WithSequence returns a copy of the record labelled with no.
func (r PostRecord) WithSequence(no string) *PostRecord {
	r.SequenceNumber = no
	return &r
}
