package search

import (
	"fmt"
	"strings"

	"github.com/hyperjump/courtfinder/internal/models"
	"golang.org/x/text/unicode/norm"
)

// Field selects a Court attribute that a query is matched against.
type Field int

const (
	FieldName Field = iota
	FieldArea
	FieldType
)

// DefaultFields are matched when no fields are given: name, then area.
var DefaultFields = []Field{FieldName, FieldArea}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldArea:
		return "area"
	case FieldType:
		return "type"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// ParseField maps a config name ("name", "area", "type") to a Field.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, nil
	case "area":
		return FieldArea, nil
	case "type":
		return FieldType, nil
	}
	return 0, fmt.Errorf("unknown match field %q", s)
}

// ParseFields parses a list of field names. An empty list yields DefaultFields.
func ParseFields(names []string) ([]Field, error) {
	if len(names) == 0 {
		return DefaultFields, nil
	}
	fields := make([]Field, 0, len(names))
	for _, n := range names {
		f, err := ParseField(n)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (f Field) value(c *models.Court) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldArea:
		return c.Area
	case FieldType:
		return c.Type
	}
	return ""
}

// Filter returns the courts whose selected fields contain query, ignoring case,
// in their original order. The query must already be normalized and non-empty:
// an empty query matches every court. The result is never nil.
func Filter(query string, courts []models.Court, fields ...Field) []models.Court {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	needle := fold(query)
	out := make([]models.Court, 0, len(courts))
	for i := range courts {
		if matches(needle, &courts[i], fields) {
			out = append(out, courts[i])
		}
	}
	return out
}

func matches(needle string, c *models.Court, fields []Field) bool {
	for _, f := range fields {
		if strings.Contains(fold(f.value(c)), needle) {
			return true
		}
	}
	return false
}

// fold lower-cases s after composing it to NFC, so "é" typed as e + U+0301
// matches a precomposed "é" in the catalogue.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
