package cli

import (
	"testing"

	"github.com/hansol-dev/school-letters/internal/config"
)

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"url", "site", "config", "format", "out", "log-file", "verbose"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not defined", name)
		}
	}
}

func TestSelectSite(t *testing.T) {
	cfg := &config.Config{
		Sites: []config.Site{
			{Name: "가람초등학교", URL: "https://a.example.kr/letters"},
			{Name: "나래중학교", URL: "https://b.example.kr/letters"},
		},
	}

	site, err := selectSite(cfg, "나래중학교")
	if err != nil {
		t.Fatalf("selectSite() error = %v", err)
	}
	if site.URL != "https://b.example.kr/letters" {
		t.Errorf("site URL = %q", site.URL)
	}

	if _, err := selectSite(cfg, "없는학교"); err == nil {
		t.Error("selectSite() error = nil for unknown site, want failure")
	}

	if _, err := selectSite(cfg, ""); err == nil {
		t.Error("selectSite() error = nil with multiple sites and no name, want failure")
	}
}

func TestSelectSite_SinglePreset(t *testing.T) {
	cfg := &config.Config{
		Sites: []config.Site{
			{Name: "가람초등학교", URL: "https://a.example.kr/letters"},
		},
	}

	site, err := selectSite(cfg, "")
	if err != nil {
		t.Fatalf("selectSite() error = %v", err)
	}
	if site.Name != "가람초등학교" {
		t.Errorf("site Name = %q", site.Name)
	}
}
