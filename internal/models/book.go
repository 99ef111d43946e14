// Package models defines core data structures for books, cart items, and conversations.
package models

import "time"

// Book is a catalog entry. The vector is derived from the title at index
// time and never changes afterwards.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Vector    []float32 `json:"-"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// CartItem is a shopping cart entry, keyed by title. At most one item per
// title exists at a time; the cart component enforces this.
type CartItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Vector    []float32 `json:"-"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// BookInput is the input for indexing a catalog entry (no vector yet).
type BookInput struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Genre  string `json:"genre" yaml:"genre"`
}
