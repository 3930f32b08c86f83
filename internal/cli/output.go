package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hansol-dev/school-letters/internal/letter"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteOutput writes the envelope in the specified format
func WriteOutput(w io.Writer, envelope *letter.Envelope, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, envelope)
	case FormatText:
		return writeText(w, envelope)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the envelope as indented JSON
func writeJSON(w io.Writer, envelope *letter.Envelope) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(envelope)
}

// writeText outputs the envelope as human-readable text
func writeText(w io.Writer, envelope *letter.Envelope) error {
	if envelope.Meta.Error != "" {
		fmt.Fprintf(w, "Extraction failed: %s\n", envelope.Meta.Error)
		return nil
	}

	if envelope.Meta.TotalCount == 0 {
		fmt.Fprintln(w, "No letters found.")
		return nil
	}

	for _, lt := range envelope.Letters {
		marker := ""
		if lt.HasAttachment {
			marker = " [attachment]"
		}
		fmt.Fprintf(w, "%s\t%s\t%s%s\n", lt.Number, lt.Date, lt.Title, marker)
	}
	fmt.Fprintf(w, "\nTotal: %d letters from %s\n", envelope.Meta.TotalCount, envelope.Meta.Source)

	return nil
}

// SaveEnvelope writes the envelope as indented JSON to the given path.
func SaveEnvelope(path string, envelope *letter.Envelope) error {
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing envelope: %w", err)
	}
	return nil
}
