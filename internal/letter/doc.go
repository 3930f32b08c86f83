// Package letter provides types for school family-letter (notice) postings
// extracted from a listing page.
//
// The letter package defines the Letter record and the Envelope returned by
// every extraction, along with date-token recovery for the YYYY.MM.DD format
// used by the school CMS. An Envelope carries an Error in its Meta only when
// the extraction failed outright; a page that yields zero letters without a
// failure (for example one containing only pinned notices) produces the same
// zero TotalCount with no Error, so callers must check Meta.Error rather
// than TotalCount to distinguish the two.
package letter
