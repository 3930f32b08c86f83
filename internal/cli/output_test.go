package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hansol-dev/school-letters/internal/letter"
)

func sampleEnvelope() *letter.Envelope {
	return letter.NewEnvelope([]*letter.Letter{
		{Number: "2", Title: "현장체험학습 동의서", Date: "2024-03-15", Views: "0", URL: "https://school.example.com/view?id=2", HasAttachment: true},
		{Number: "1", Title: "신입생 안내", Date: "2024-03-02", Views: "0", URL: "https://school.example.com/view?id=1"},
	}, "school.example.com", "https://school.example.com/letters")
}

func TestWriteOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleEnvelope(), FormatText); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "현장체험학습 동의서") {
		t.Errorf("text output missing title: %s", out)
	}
	if !strings.Contains(out, "[attachment]") {
		t.Errorf("text output missing attachment marker: %s", out)
	}
	if !strings.Contains(out, "Total: 2 letters from school.example.com") {
		t.Errorf("text output missing total line: %s", out)
	}
}

func TestWriteOutput_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	env := letter.NewEnvelope(nil, "src", "https://example.com")

	if err := WriteOutput(&buf, env, FormatText); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No letters found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteOutput_TextFailure(t *testing.T) {
	var buf bytes.Buffer
	env := letter.FailedEnvelope("src", "https://example.com", "notice table not found")

	if err := WriteOutput(&buf, env, FormatText); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Extraction failed: notice table not found") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleEnvelope(), FormatJSON); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}

	var decoded letter.Envelope
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Meta.TotalCount != 2 || len(decoded.Letters) != 2 {
		t.Errorf("decoded envelope = %+v", decoded.Meta)
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleEnvelope(), OutputFormat("yaml")); err == nil {
		t.Fatal("WriteOutput() error = nil, want unknown format failure")
	}
}

func TestSaveEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letters.json")

	if err := SaveEnvelope(path, sampleEnvelope()); err != nil {
		t.Fatalf("SaveEnvelope() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var decoded letter.Envelope
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("saved envelope is not valid JSON: %v", err)
	}
	if decoded.Meta.Source != "school.example.com" {
		t.Errorf("Source = %q", decoded.Meta.Source)
	}
}
