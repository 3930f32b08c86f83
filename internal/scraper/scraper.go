package scraper

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hansol-dev/school-letters/internal/letter"
	"github.com/hansol-dev/school-letters/internal/logger"
)

const (
	// UserAgent identifies the fetch as a desktop browser; the school CMS
	// serves a reduced page to unrecognized clients.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// Timeout bounds the single fetch attempt; there is no retry.
	Timeout = 10 * time.Second

	// DefaultDetailTemplate is the detail-view URL shape of the school CMS
	// board, filled with the numeric posting ID recovered from a row's
	// script handler. It is specific to this board template.
	DefaultDetailTemplate = "/ocheonhs/na/ntt/selectNttView.do?mi=159125&bbsId=76556&nttSn=%s"

	// UnknownSite labels envelopes whose URL yields no usable host.
	UnknownSite = "unknown_site"

	// snippetLimit caps the HTML sample logged when no table is found.
	snippetLimit = 5000
)

// hostPattern extracts the host component used as the default site label.
var hostPattern = regexp.MustCompile(`^https?://(?:www\.)?([^/]+)`)

// Scraper extracts family-letter listings from a school website.
type Scraper struct {
	client         *http.Client
	log            *logger.Logger
	metrics        *logger.Metrics
	detailTemplate string
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithHTTPClient replaces the default HTTP client. The caller is
// responsible for the replacement's timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		s.client = client
	}
}

// WithDetailTemplate overrides the detail-view URL template used when
// recovering script-triggered links. The template must contain one %s verb
// for the posting ID.
func WithDetailTemplate(template string) Option {
	return func(s *Scraper) {
		s.detailTemplate = template
	}
}

// WithMetrics attaches a metrics tracker recording extraction counters and
// fetch timings.
func WithMetrics(m *logger.Metrics) Option {
	return func(s *Scraper) {
		s.metrics = m
	}
}

// New creates a Scraper logging to log.
func New(log *logger.Logger, opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		log:            log,
		detailTemplate: DefaultDetailTemplate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract fetches the listing page at pageURL and returns its notice rows.
// If siteName is empty it is derived from the URL's host. Extract never
// returns an error: fetch, parse, and table-location failures produce an
// envelope with empty Letters and Meta.Error set, and individual row
// failures are logged and skipped without affecting the rest of the page.
func (s *Scraper) Extract(pageURL, siteName string) *letter.Envelope {
	if siteName == "" {
		siteName = SiteNameFromURL(pageURL)
	}

	s.log.Info("starting family letter extraction", logger.Fields{
		"site": siteName,
		"url":  pageURL,
	})

	body, err := s.fetch(pageURL)
	if err != nil {
		s.log.Error("fetch failed", logger.Fields{"url": pageURL}, err)
		return letter.FailedEnvelope(siteName, pageURL, err.Error())
	}

	letters, err := s.parseListing(body, pageURL)
	if err != nil {
		return letter.FailedEnvelope(siteName, pageURL, err.Error())
	}

	if s.metrics != nil {
		s.metrics.AddCounter("extract.letters", int64(len(letters)))
		s.metrics.SetGauge("extract.last_count", float64(len(letters)))
	}

	s.log.Info("family letter extraction complete", logger.Fields{
		"site":  siteName,
		"count": len(letters),
	})

	return letter.NewEnvelope(letters, siteName, pageURL)
}

// fetch performs the single GET and returns the raw body. The body is
// handed on as-is and parsed as UTF-8: the target sites declare stale
// charsets, so no content-type sniffing is applied.
func (s *Scraper) fetch(pageURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if s.metrics != nil {
		s.metrics.RecordTiming("extract.fetch", time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// parseListing parses the page body and extracts every notice row. A panic
// anywhere outside per-row handling is reported as a parse failure rather
// than escaping to the caller.
func (s *Scraper) parseListing(body []byte, pageURL string) (letters []*letter.Letter, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing listing page: %v", r)
			s.log.Error("listing parse panicked", logger.Fields{"url": pageURL}, err)
			letters = nil
		}
	}()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.log.Error("HTML parse failed", logger.Fields{"url": pageURL}, err)
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tbody := locateNoticeBody(doc)
	if tbody == nil {
		s.log.Error("notice table not found", logger.Fields{
			"url":         pageURL,
			"html_sample": documentSnippet(doc),
		}, nil)
		return nil, fmt.Errorf("notice table not found")
	}

	letters = make([]*letter.Letter, 0)
	tbody.Find("tr").Each(func(i int, row *goquery.Selection) {
		lt, rowErr := s.extractRow(row, pageURL)
		if rowErr != nil {
			s.log.Error("row extraction failed", logger.Fields{"row": i}, rowErr)
			if s.metrics != nil {
				s.metrics.IncrCounter("extract.row_errors")
			}
			return
		}
		if lt == nil {
			if s.metrics != nil {
				s.metrics.IncrCounter("extract.rows_skipped")
			}
			return
		}
		letters = append(letters, lt)
	})

	return letters, nil
}

// SiteNameFromURL derives a site label from the host component of rawURL,
// dropping a leading "www.". URLs without a recognizable host map to
// UnknownSite.
func SiteNameFromURL(rawURL string) string {
	if m := hostPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return UnknownSite
}

// documentSnippet renders the leading portion of the parsed document for
// the diagnostic log.
func documentSnippet(doc *goquery.Document) string {
	html, err := doc.Html()
	if err != nil {
		return ""
	}
	if len(html) > snippetLimit {
		return html[:snippetLimit]
	}
	return html
}
