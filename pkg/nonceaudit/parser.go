package nonceaudit

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

// RecordParser reads signature records from a source.
type RecordParser interface {
	ParseFile(path string) ([]Record, error)
	Parse(r io.Reader) ([]Record, error)
}

// Fields names the columns or object keys a parser reads. Empty values
// select the defaults: signature, r, s, public_key, message, context.
//
// Either Signature (64 bytes) or the pair R and S (32 bytes each) must be
// present. Context is optional and defaults to empty. Text values that
// start with 0x are decoded as hex.
type Fields struct {
	Signature string
	R         string
	S         string
	PublicKey string
	Message   string
	Context   string
}

// JSONParser reads a JSON array of signature objects:
//
//	[
//	  {"signature": "hex", "public_key": "hex", "message": "text or 0xhex", "context": "text or 0xhex"},
//	  {"r": "hex", "s": "hex", "public_key": "hex", "message": "0x..."}
//	]
type JSONParser struct {
	Fields
}

// ParseFile parses the JSON file at path.
func (p *JSONParser) ParseFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()
	return p.Parse(file)
}

// Parse parses JSON from r.
func (p *JSONParser) Parse(r io.Reader) ([]Record, error) {
	var items []map[string]any
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		rec, err := p.record(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (p *Fields) record(item map[string]any) (Record, error) {
	var rec Record

	if v, ok := item[or(p.Signature, "signature")]; ok {
		b, err := hexField(v)
		if err != nil {
			return rec, fmt.Errorf("signature: %w", err)
		}
		if rec.Signature, err = stdsig.SignatureFromBytes(b); err != nil {
			return rec, err
		}
	} else {
		r, err := requiredHex(item, or(p.R, "r"), 32)
		if err != nil {
			return rec, err
		}
		s, err := requiredHex(item, or(p.S, "s"), 32)
		if err != nil {
			return rec, err
		}
		copy(rec.Signature[:32], r)
		copy(rec.Signature[32:], s)
	}

	pub, err := requiredHex(item, or(p.PublicKey, "public_key"), stdsig.PublicKeyLength)
	if err != nil {
		return rec, err
	}
	copy(rec.PublicKey[:], pub)

	msgField := or(p.Message, "message")
	v, ok := item[msgField]
	if !ok {
		return rec, fmt.Errorf("missing %s field", msgField)
	}
	if rec.Message, err = textField(v); err != nil {
		return rec, fmt.Errorf("%s: %w", msgField, err)
	}

	if v, ok := item[or(p.Context, "context")]; ok {
		if rec.Context, err = textField(v); err != nil {
			return rec, fmt.Errorf("context: %w", err)
		}
		if len(rec.Context) > stdsig.ContextMaxLength {
			return rec, stdsig.ErrInvalidContextLength
		}
	}
	return rec, nil
}

// CSVParser reads CSV with a header row naming the columns, e.g.
//
//	signature,public_key,message,context
//	9f...,3b...,hello,0x
type CSVParser struct {
	Fields
}

// ParseFile parses the CSV file at path.
func (p *CSVParser) ParseFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return p.Parse(file)
}

// Parse parses CSV from r.
func (p *CSVParser) Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		item := make(map[string]any, len(header))
		for i, col := range header {
			if row[i] != "" || col == or(p.Message, "message") {
				item[col] = row[i]
			}
		}
		rec, err := p.record(item)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParserFor picks a parser from the file extension: .csv reads CSV,
// anything else JSON.
func ParserFor(path string) RecordParser {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return &CSVParser{}
	}
	return &JSONParser{}
}

// WriteJSON writes records in the format JSONParser reads, with every value
// hex encoded.
func WriteJSON(w io.Writer, records []Record) error {
	items := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		items = append(items, map[string]string{
			"signature":  hex.EncodeToString(rec.Signature[:]),
			"public_key": hex.EncodeToString(rec.PublicKey[:]),
			"message":    "0x" + hex.EncodeToString(rec.Message),
			"context":    "0x" + hex.EncodeToString(rec.Context),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func requiredHex(item map[string]any, field string, size int) ([]byte, error) {
	v, ok := item[field]
	if !ok {
		return nil, fmt.Errorf("missing %s field", field)
	}
	b, err := hexField(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	if len(b) != size {
		return nil, fmt.Errorf("%s: want %d bytes, got %d", field, size, len(b))
	}
	return b, nil
}

func hexField(v any) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("must be a hex string, got %T", v)
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

func textField(v any) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string, got %T", v)
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return hex.DecodeString(s[2:])
	}
	return []byte(s), nil
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

var (
	_ RecordParser = (*JSONParser)(nil)
	_ RecordParser = (*CSVParser)(nil)
)
