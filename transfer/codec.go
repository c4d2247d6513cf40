// Package transfer encodes the item collection for backup and restores it
// from a JSON backup.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kasuganosora/memorybox/model"
)

// Format is a backup encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
)

var (
	// ErrUnknownFormat is returned for a format other than json/csv/txt.
	ErrUnknownFormat = errors.New("transfer: unknown export format")
	// ErrInvalidFormat is returned by Import when the payload is not a JSON
	// array of items.
	ErrInvalidFormat = errors.New("transfer: invalid import format")
)

// ParseFormat accepts a format name case-insensitively. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatTXT:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the MIME type served with an export.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatTXT:
		return "text/plain"
	}
	return "application/json"
}

// Filename returns memorybox_backup_<YYYY-MM-DD>.<ext> for the UTC date of now.
func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("memorybox_backup_%s.%s", now.UTC().Format("2006-01-02"), f)
}

// Export encodes items. JSON is lossless; CSV and TXT are one-way summaries.
// loc sets the calendar day printed in the CSV date column (nil = UTC).
func Export(items []model.InventoryItem, f Format, loc *time.Location) ([]byte, error) {
	switch f {
	case FormatJSON:
		return exportJSON(items)
	case FormatCSV:
		return exportCSV(items, loc), nil
	case FormatTXT:
		return exportTXT(items), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func exportJSON(items []model.InventoryItem) ([]byte, error) {
	if items == nil {
		items = []model.InventoryItem{}
	}
	return json.MarshalIndent(items, "", "  ")
}

// csvQuote always quotes, doubling embedded quotes.
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// localeDate matches the en-US short date, e.g. 3/7/2024.
func localeDate(ms int64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(ms).In(loc).Format("1/2/2006")
}

func exportCSV(items []model.InventoryItem, loc *time.Location) []byte {
	var buf bytes.Buffer
	buf.WriteString("Name,Category,Location,Notes,Date")
	for _, it := range items {
		buf.WriteByte('\n')
		buf.WriteString(strings.Join([]string{
			csvQuote(it.Name),
			csvQuote(string(it.Category)),
			csvQuote(it.Location),
			csvQuote(it.Notes),
			csvQuote(localeDate(it.CreatedAt, loc)),
		}, ","))
	}
	return buf.Bytes()
}

func exportTXT(items []model.InventoryItem) []byte {
	blocks := make([]string, 0, len(items))
	for _, it := range items {
		loc := it.Location
		if loc == "" {
			loc = "Unknown"
		}
		blocks = append(blocks, fmt.Sprintf("Item: %s\nLocation: %s\nNotes: %s\n---", it.Name, loc, it.Notes))
	}
	return []byte(strings.Join(blocks, "\n"))
}

// Import decodes a JSON backup. The payload must be an array of item
// objects with non-empty, unique ids.
func Import(payload []byte) ([]model.InventoryItem, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil || raw == nil {
		return nil, fmt.Errorf("%w: not a JSON array", ErrInvalidFormat)
	}
	items := make([]model.InventoryItem, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, elem := range raw {
		trimmed := bytes.TrimSpace(elem)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrInvalidFormat, i)
		}
		var it model.InventoryItem
		if err := json.Unmarshal(trimmed, &it); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidFormat, i, err)
		}
		if it.ID == "" {
			return nil, fmt.Errorf("%w: element %d has no id", ErrInvalidFormat, i)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidFormat, it.ID)
		}
		seen[it.ID] = struct{}{}
		items = append(items, it)
	}
	return items, nil
}
