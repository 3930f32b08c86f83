package scraper

import "github.com/PuerkitoBio/goquery"

// bodyStrategy attempts to locate the notice table body in a document,
// returning nil when its markup variant is not present. Strategies are
// pure lookups over the parse tree so each can be tested on its own.
type bodyStrategy func(doc *goquery.Document) *goquery.Selection

// bodyStrategies is tried in priority order; the first non-nil result wins.
var bodyStrategies = []bodyStrategy{
	combinedSelectorBody,
	stepwiseDescentBody,
	listClassBody,
	anyDataTableBody,
}

// locateNoticeBody finds the tbody holding the notice rows, or nil when no
// strategy matches.
func locateNoticeBody(doc *goquery.Document) *goquery.Selection {
	for _, strategy := range bodyStrategies {
		if tbody := strategy(doc); tbody != nil {
			return tbody
		}
	}
	return nil
}

// combinedSelectorBody matches the canonical container/list/table path of
// the school CMS template in a single selector.
func combinedSelectorBody(doc *goquery.Document) *goquery.Selection {
	return nonEmpty(doc.Find("#subContent > div > div.BD_list > table > tbody").First())
}

// stepwiseDescentBody walks the same hierarchy one element at a time.
// Some sites nest extra wrappers that break the combined child selector
// while keeping every landmark reachable by descendant search.
func stepwiseDescentBody(doc *goquery.Document) *goquery.Selection {
	subContent := doc.Find("#subContent").First()
	if subContent.Length() == 0 {
		return nil
	}
	div := subContent.Find("div").First()
	if div.Length() == 0 {
		return nil
	}
	bdList := div.Find("div.BD_list").First()
	if bdList.Length() == 0 {
		return nil
	}
	table := bdList.Find("table").First()
	if table.Length() == 0 {
		return nil
	}
	return nonEmpty(table.Find("tbody").First())
}

// listClassBody searches the whole document for the known list class.
func listClassBody(doc *goquery.Document) *goquery.Selection {
	bdList := doc.Find("div.BD_list").First()
	if bdList.Length() == 0 {
		return nil
	}
	return nonEmpty(bdList.Find("table tbody").First())
}

// anyDataTableBody is the last resort: scan every table and accept the
// first body that looks like real data, i.e. it has rows and the first row
// carries ordinary data cells rather than headers.
func anyDataTableBody(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		tbody := table.Find("tbody").First()
		if tbody.Length() == 0 {
			return true
		}
		rows := tbody.Find("tr")
		if rows.Length() == 0 {
			return true
		}
		if rows.First().Find("td").Length() == 0 {
			return true
		}
		found = tbody
		return false
	})
	return found
}

func nonEmpty(sel *goquery.Selection) *goquery.Selection {
	if sel.Length() == 0 {
		return nil
	}
	return sel
}
