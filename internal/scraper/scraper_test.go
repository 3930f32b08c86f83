package scraper

import (
	"os"
	"testing"
)

func TestParseListing_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/sample_letters.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	s := testScraper()
	letters, err := s.parseListing(data, testPageURL)
	if err != nil {
		t.Fatalf("parseListing() error = %v", err)
	}

	// Header row and both pinned rows are excluded; three data rows remain.
	if len(letters) != 3 {
		t.Fatalf("parseListing() returned %d letters, want 3", len(letters))
	}

	for _, lt := range letters {
		if lt.Number == "공지" || lt.Number == "통합공지" {
			t.Errorf("pinned row leaked into results: %+v", lt)
		}
		if lt.Author != "" {
			t.Errorf("Author = %q, want empty (reserved field)", lt.Author)
		}
		if lt.Views != "0" {
			t.Errorf("Views = %q, want \"0\" (reserved field)", lt.Views)
		}
	}

	first := letters[0]
	if first.Number != "3" {
		t.Errorf("first letter Number = %q, want 3 (source order)", first.Number)
	}
	if first.Title != "현장체험학습 동의서" {
		t.Errorf("first letter Title = %q", first.Title)
	}
	if want := "https://school.gyo6.net/ocheonhs/na/ntt/selectNttView.do?mi=159125&bbsId=76556&nttSn=12345"; first.URL != want {
		t.Errorf("first letter URL = %q, want %q (recovered from onclick)", first.URL, want)
	}
	if first.Date != "2024-03-15" {
		t.Errorf("first letter Date = %q, want 2024-03-15", first.Date)
	}
	if !first.HasAttachment {
		t.Error("first letter HasAttachment = false, want true")
	}

	second := letters[1]
	if second.Number != "2" || second.Date != "2024-03-02" || second.HasAttachment {
		t.Errorf("second letter = %+v", second)
	}

	// The last row carries no date token anywhere.
	third := letters[2]
	if third.Number != "1" {
		t.Errorf("third letter Number = %q, want 1", third.Number)
	}
	if third.Date != "" {
		t.Errorf("third letter Date = %q, want empty", third.Date)
	}
}

func TestParseListing_NoTable(t *testing.T) {
	s := testScraper()

	letters, err := s.parseListing([]byte("<html><body><p>점검 중입니다</p></body></html>"), testPageURL)
	if err == nil {
		t.Fatal("parseListing() error = nil, want table-not-found failure")
	}
	if err.Error() != "notice table not found" {
		t.Errorf("error = %q, want 'notice table not found'", err.Error())
	}
	if letters != nil {
		t.Errorf("letters = %v, want nil on failure", letters)
	}
}

func TestParseListing_EmptyBody(t *testing.T) {
	s := testScraper()

	// A located table whose rows are all pinned yields zero letters with no
	// error; callers cannot tell this from a failure except via Meta.Error.
	html := `<div class="BD_list"><table><tbody>
		<tr><td>공지</td><td class="ta_l"><a href="/v?id=1">a</a></td><td>x</td><td>2024.01.01</td></tr>
	</tbody></table></div>`

	letters, err := s.parseListing([]byte(html), testPageURL)
	if err != nil {
		t.Fatalf("parseListing() error = %v, want nil", err)
	}
	if len(letters) != 0 {
		t.Errorf("letters = %v, want empty", letters)
	}
}

func TestSiteNameFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"plain host", "https://school.gyo6.net/ocheonhs/na/ntt/selectNttList.do", "school.gyo6.net"},
		{"www stripped", "https://www.example-hs.kr/letters", "example-hs.kr"},
		{"http scheme", "http://school.example.com/", "school.example.com"},
		{"host only", "https://school.example.com", "school.example.com"},
		{"not a url", "ftp://school.example.com/x", UnknownSite},
		{"empty", "", UnknownSite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SiteNameFromURL(tt.url); got != tt.expected {
				t.Errorf("SiteNameFromURL(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	s := testScraper()

	if s.client == nil {
		t.Error("scraper client is nil")
	}
	if s.client.Timeout != Timeout {
		t.Errorf("client timeout = %v, want %v", s.client.Timeout, Timeout)
	}
	if s.detailTemplate != DefaultDetailTemplate {
		t.Errorf("detail template = %q, want default", s.detailTemplate)
	}
}
