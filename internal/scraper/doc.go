// Package scraper fetches a school family-letter listing page and extracts
// its notice rows.
//
// The scraper issues a single browser-identified GET with a fixed timeout,
// locates the notice table through an ordered chain of fallback strategies
// (the shared school CMS renders the same board under several markup
// variants), and converts each data row into a letter.Letter. It recovers
// detail-page links from script-triggered pseudo-links, normalizes
// YYYY.MM.DD dates, and flags rows carrying an attachment icon. Extract
// never returns an error: all failure modes are reported through the
// envelope's Meta.Error with an empty letter list.
package scraper
