package letter

import "time"

// Letter represents one notice row from a school listing page.
// Author and Views are reserved fields: the listing page for this board
// type does not populate them, so Author is always empty and Views is "0".
type Letter struct {
	Number        string `json:"number"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Date          string `json:"date"`
	Views         string `json:"views"`
	URL           string `json:"url"`
	HasAttachment bool   `json:"has_attachment"`
}

// Meta describes the outcome of an extraction. Error is set only when the
// call failed as a whole (fetch, parse, or table location); it is never set
// for rows that were individually skipped.
type Meta struct {
	TotalCount  int    `json:"total_count"`
	LastUpdated string `json:"last_updated"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	Error       string `json:"error,omitempty"`
}

// Envelope is the result of one extraction call. Letters preserves the
// source row order and is never nil, so it marshals as [] when empty.
type Envelope struct {
	Letters []*Letter `json:"letters"`
	Meta    Meta      `json:"meta"`
}

// NewEnvelope wraps extracted letters in an envelope with its metadata.
func NewEnvelope(letters []*Letter, source, url string) *Envelope {
	if letters == nil {
		letters = make([]*Letter, 0)
	}
	return &Envelope{
		Letters: letters,
		Meta: Meta{
			TotalCount:  len(letters),
			LastUpdated: Today(),
			Source:      source,
			URL:         url,
		},
	}
}

// FailedEnvelope builds the envelope for a failed extraction: no letters
// and the failure description in Meta.Error.
func FailedEnvelope(source, url, errMsg string) *Envelope {
	env := NewEnvelope(nil, source, url)
	env.Meta.Error = errMsg
	return env
}

// Today returns the current date formatted as YYYY-MM-DD.
func Today() string {
	return time.Now().Format("2006-01-02")
}
