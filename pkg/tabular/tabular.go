// Package tabular holds the lenient cell parsing shared by CSV seeds and edited tables.
// Anything that does not parse becomes blank (nil) instead of an error.
package tabular

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
}

// ParseOptionalFloat returns nil for blanks, garbage, NaN and infinities.
func ParseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseOptionalDate accepts ISO dates with or without a time part.
func ParseOptionalDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return &t
		}
	}
	return nil
}

// LooseFloat decodes a JSON number, numeric string, null or anything else.
// Non-numeric input leaves Value nil.
type LooseFloat struct {
	Value *float64
	Set   bool // key present in the document
}

func (l *LooseFloat) UnmarshalJSON(b []byte) error {
	l.Set = true
	l.Value = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		l.Value = ParseOptionalFloat(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		l.Value = ParseOptionalFloat(s)
	}
	return nil
}

func (l LooseFloat) MarshalJSON() ([]byte, error) {
	if l.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*l.Value)
}

// LooseDate decodes a JSON date string; anything unparseable leaves Value nil.
type LooseDate struct {
	Value *time.Time
	Set   bool
}

func (l *LooseDate) UnmarshalJSON(b []byte) error {
	l.Set = true
	l.Value = nil
	var s string
	if err := json.Unmarshal(bytes.TrimSpace(b), &s); err == nil {
		l.Value = ParseOptionalDate(s)
	}
	return nil
}

func (l LooseDate) MarshalJSON() ([]byte, error) {
	if l.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(l.Value.Format("2006-01-02"))
}

// NormalizeHeader folds a column title so aliases match regardless of case,
// spacing, dashes, underscores or a leading BOM.
func NormalizeHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// Header maps normalized column titles to their index.
type Header map[string]int

func NewHeader(cols []string) Header {
	h := Header{}
	for i, c := range cols {
		if _, dup := h[NormalizeHeader(c)]; !dup {
			h[NormalizeHeader(c)] = i
		}
	}
	return h
}

// Find returns the index of the first alias present, or -1.
func (h Header) Find(aliases ...string) int {
	for _, a := range aliases {
		if i, ok := h[NormalizeHeader(a)]; ok {
			return i
		}
	}
	return -1
}

// Cell guards against short rows and missing columns.
func Cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
