// Package logging configures zerolog for the library and its tools and
// keeps key material out of every log sink.
package logging

import (
	"io"
	"regexp"
	"strings"
)

// RedactedValue replaces anything that looks like key material.
const RedactedValue = "[REDACTED]"

// sensitivePatterns match secrets as they tend to appear in formatted log
// lines: a sensitive field name followed by a hex or base64 value.
var sensitivePatterns = []*regexp.Regexp{
	// JSON fields: "private_key":"9d61...".
	regexp.MustCompile(`(?i)"(private[_-]?key|seed|blinding|secret|priv)"\s*:\s*"[^"]*"`),

	// key=value and key: value forms.
	regexp.MustCompile(`(?i)\b(private[_-]?key|seed|blinding|secret|priv)\s*[:=]\s*["']?[0-9a-zA-Z+/=_-]{16,}["']?`),

	// PEM private keys.
	regexp.MustCompile(`(?i)-----BEGIN[A-Z\s]+PRIVATE KEY-----`),
}

var sensitiveFieldNames = []string{
	"private_key",
	"privatekey",
	"private-key",
	"priv",
	"seed",
	"blinding",
	"secret",
}

// ContainsSensitiveData reports whether s matches any sensitive pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces every sensitive match in value.
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllStringFunc(result, redactMatch)
	}
	return result
}

// redactMatch keeps the field name so the log line stays readable.
func redactMatch(match string) string {
	if i := strings.IndexAny(match, ":="); i >= 0 {
		sep := match[:i+1]
		if strings.HasPrefix(match, `"`) {
			return sep + `"` + RedactedValue + `"`
		}
		return sep + RedactedValue
	}
	return RedactedValue
}

// IsSensitiveFieldName reports whether a field with this name may carry
// secret values.
func IsSensitiveFieldName(fieldName string) bool {
	lower := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFieldNames {
		if lower == sensitive || strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}

// SafeValue returns value, or RedactedValue if fieldName marks it as secret.
//
//	logger.Debug().Str("key", logging.SafeValue("key", v)).Msg("loaded")
func SafeValue(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// FilteringWriter redacts sensitive data before it reaches w.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter wraps w.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer. It reports len(p) on success even when the
// filtered output is shorter.
func (fw *FilteringWriter) Write(p []byte) (int, error) {
	filtered := FilterSensitiveValue(string(p))
	if _, err := fw.w.Write([]byte(filtered)); err != nil {
		return 0, err
	}
	return len(p), nil
}

type filteringWriteCloser struct {
	filter *FilteringWriter
	closer io.Closer
}

func (fwc *filteringWriteCloser) Write(p []byte) (int, error) {
	return fwc.filter.Write(p)
}

func (fwc *filteringWriteCloser) Close() error {
	return fwc.closer.Close()
}
