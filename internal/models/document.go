package models

import "time"

// Document is one stored record in a collection: a set of named text fields
// plus a dense vector. Catalog and cart entries are both stored this way.
type Document struct {
	ID        string            `json:"id"`
	Fields    map[string]string `json:"fields"`
	Vector    []float32         `json:"-"`
	CreatedAt time.Time         `json:"created_at"`
}

// Field returns the named text field, or "" when absent.
func (d *Document) Field(name string) string {
	if d.Fields == nil {
		return ""
	}
	return d.Fields[name]
}
