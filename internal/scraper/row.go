package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hansol-dev/school-letters/internal/letter"
	"github.com/hansol-dev/school-letters/internal/logger"
)

// Pinned announcement markers in the sequence column. Rows carrying either
// are sticky notices, not letters, and are excluded entirely.
const (
	pinnedMarker       = "공지"
	pinnedMarkerMerged = "통합공지"
)

// titleCellClass marks the left-aligned title cell in the CMS template.
const titleCellClass = "td.ta_l"

// handlerIDPattern captures the quoted numeric posting ID inside an inline
// event handler, e.g. onclick="goView('12345')".
var handlerIDPattern = regexp.MustCompile(`['"](\d+)['"]`)

// extractRow converts one table row into a letter. It returns (nil, nil)
// for rows that are skipped by design: header rows, rows with fewer than
// four data cells, and pinned notices. A panic while reading the row is
// converted into an error so a single bad row never aborts the page.
func (s *Scraper) extractRow(row *goquery.Selection, pageURL string) (lt *letter.Letter, err error) {
	defer func() {
		if r := recover(); r != nil {
			lt = nil
			err = fmt.Errorf("reading row: %v", r)
		}
	}()

	if row.Find("th").Length() > 0 {
		return nil, nil
	}

	cells := row.Find("td")
	if cells.Length() < 4 {
		// Not enough columns for number/title/author/date.
		return nil, nil
	}

	number := strings.TrimSpace(cells.Eq(0).Text())
	if number == pinnedMarker || number == pinnedMarkerMerged {
		return nil, nil
	}

	title, link := s.titleAndLink(row, cells)

	if link != "" && !strings.HasPrefix(link, "http") {
		resolved, resolveErr := resolveLink(pageURL, link)
		if resolveErr != nil {
			return nil, fmt.Errorf("resolving link %q: %w", link, resolveErr)
		}
		link = resolved
	}

	date := s.dateFromCells(cells)

	return &letter.Letter{
		Number:        number,
		Title:         title,
		Author:        "",
		Date:          date,
		Views:         "0",
		URL:           link,
		HasAttachment: hasAttachmentIcon(cells),
	}, nil
}

// titleAndLink reads the title cell, preferring the left-aligned cell of
// the CMS template and falling back to the second column. The anchor's
// text wins over the cell text when present.
func (s *Scraper) titleAndLink(row, cells *goquery.Selection) (title, link string) {
	titleCell := row.Find(titleCellClass).First()
	if titleCell.Length() == 0 {
		titleCell = cells.Eq(1)
	}

	anchor := titleCell.Find("a").First()
	if anchor.Length() == 0 {
		return strings.TrimSpace(titleCell.Text()), ""
	}

	title = strings.TrimSpace(anchor.Text())
	link = anchor.AttrOr("href", "")
	if strings.HasPrefix(link, "javascript:") {
		link = s.detailLinkFromHandler(anchor)
	}
	return title, link
}

// detailLinkFromHandler recovers a detail-page link from a script-triggered
// pseudo-link by pulling the quoted numeric posting ID out of the anchor's
// onclick attribute. This heuristic is coupled to the one known CMS
// template and makes no attempt to generalize; rows whose handler carries
// no quoted ID end up with an empty link.
func (s *Scraper) detailLinkFromHandler(anchor *goquery.Selection) string {
	onclick := anchor.AttrOr("onclick", "")
	if onclick == "" {
		return ""
	}
	m := handlerIDPattern.FindStringSubmatch(onclick)
	if m == nil {
		return ""
	}
	return fmt.Sprintf(s.detailTemplate, m[1])
}

// dateFromCells recovers the registration date. The date column is usually
// the fourth cell, but some site variants shuffle columns, so on a miss
// every cell is scanned in order. Rows without any date token keep an
// empty date and are logged as a warning.
func (s *Scraper) dateFromCells(cells *goquery.Selection) string {
	token := letter.FindDateToken(strings.TrimSpace(cells.Eq(3).Text()))

	if token == "" {
		cells.EachWithBreak(func(i int, cell *goquery.Selection) bool {
			token = letter.FindDateToken(strings.TrimSpace(cell.Text()))
			if token != "" {
				s.log.Debug("date found outside date column", logger.Fields{
					"cell":  i,
					"token": token,
				})
				return false
			}
			return true
		})
	}

	if token == "" {
		s.log.Warn("no date token in row", logger.Fields{
			"cells": cellTexts(cells),
		})
		return ""
	}

	return letter.NormalizeDate(token)
}

// hasAttachmentIcon reports whether any cell embeds an image element; the
// CMS uses an inline icon to flag postings with attachments.
func hasAttachmentIcon(cells *goquery.Selection) bool {
	found := false
	cells.EachWithBreak(func(i int, cell *goquery.Selection) bool {
		if cell.Find("img").Length() > 0 {
			found = true
			return false
		}
		return true
	})
	return found
}

// resolveLink resolves a relative link against the listing page URL.
func resolveLink(pageURL, link string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// cellTexts collects the trimmed text of every cell for diagnostics.
func cellTexts(cells *goquery.Selection) []string {
	texts := make([]string, 0, cells.Length())
	cells.Each(func(i int, cell *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(cell.Text()))
	})
	return texts
}
