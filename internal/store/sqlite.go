package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bookwise/bookwise/internal/models"
)

// docDB persists documents for all collections in one SQLite database.
type docDB struct {
	db *sql.DB
}

// openDocDB opens or creates a SQLite database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func openDocDB(dbPath string) (*docDB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		collection TEXT NOT NULL,
		fields TEXT NOT NULL,
		vector BLOB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection, created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &docDB{db: db}, nil
}

// Insert stores a document in the given collection.
func (s *docDB) Insert(ctx context.Context, collection string, doc *models.Document) error {
	fieldsJSON, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal fields: %w", err)
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, collection, fields, vector, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		doc.ID, collection, string(fieldsJSON), float32SliceToBytes(doc.Vector), doc.CreatedAt,
	)
	return err
}

// Get returns a document by ID within a collection.
func (s *docDB) Get(ctx context.Context, collection, id string) (*models.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, fields, vector, created_at
		 FROM documents WHERE collection = ? AND id = ?`, collection, id,
	)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return doc, err
}

// List returns up to limit documents from a collection in insertion order.
func (s *docDB) List(ctx context.Context, collection string, limit int) ([]*models.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fields, vector, created_at
		 FROM documents WHERE collection = ? ORDER BY created_at LIMIT ?`,
		collection, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Delete removes a document by ID.
func (s *docDB) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	return err
}

// DeleteAll removes every document in a collection.
func (s *docDB) DeleteAll(ctx context.Context, collection string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ?`, collection)
	return err
}

// Count returns the number of documents in a collection.
func (s *docDB) Count(ctx context.Context, collection string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE collection = ?`, collection).Scan(&count)
	return count, err
}

// IDs returns all document IDs in a collection.
func (s *docDB) IDs(ctx context.Context, collection string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM documents WHERE collection = ?`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database connection.
func (s *docDB) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	var fieldsJSON string
	var vectorBlob []byte
	if err := row.Scan(&doc.ID, &fieldsJSON, &vectorBlob, &doc.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &doc.Fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fields: %w", err)
	}
	doc.Vector = bytesToFloat32Slice(vectorBlob)
	return &doc, nil
}

// Vectors are stored as little-endian float32 blobs.
func float32SliceToBytes(s []float32) []byte {
	const size = 4
	out := make([]byte, len(s)*size)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*size:(i+1)*size], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(b []byte) []float32 {
	const size = 4
	if len(b) == 0 {
		return nil
	}
	out := make([]float32, len(b)/size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size : (i+1)*size]))
	}
	return out
}
