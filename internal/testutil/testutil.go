package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"bookshelf/internal/book"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewRequest creates a new HTTP request for testing. A string body is sent
// as text/plain; any other non-nil body is JSON-encoded.
func NewRequest(method, path string, body interface{}) *http.Request {
	switch v := body.(type) {
	case nil:
		return httptest.NewRequest(method, path, nil)
	case string:
		r := httptest.NewRequest(method, path, strings.NewReader(v))
		r.Header.Set("Content-Type", "text/plain")
		return r
	default:
		bodyBytes, _ := json.Marshal(v)
		r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
		return r
	}
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   []byte
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)
	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyBytes,
	}
}

// DecodeBook decodes a recorded body as a single book.
func (r RecordResponse) DecodeBook() (book.Book, error) {
	var b book.Book
	err := json.Unmarshal(r.Body, &b)
	return b, err
}

// DecodeBooks decodes a recorded body as a list of books.
func (r RecordResponse) DecodeBooks() ([]book.Book, error) {
	var out []book.Book
	err := json.Unmarshal(r.Body, &out)
	return out, err
}

// MemoryRepository is an in-memory book.Repository for handler and router tests.
type MemoryRepository struct {
	mu    sync.Mutex
	books map[int]book.Book
}

var _ book.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository(seed ...book.Book) *MemoryRepository {
	m := &MemoryRepository{books: make(map[int]book.Book)}
	for _, b := range seed {
		m.books[b.ID] = b
	}
	return m
}

func (m *MemoryRepository) FindAll(ctx context.Context) ([]book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]book.Book, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, id int) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return b, nil
}

func (m *MemoryRepository) Save(ctx context.Context, b book.Book) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[b.ID] = b
	return b, nil
}

func (m *MemoryRepository) Insert(ctx context.Context, b book.Book) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[b.ID]; ok {
		return book.Book{}, book.ErrAlreadyExists
	}
	m.books[b.ID] = b
	return b, nil
}

func (m *MemoryRepository) DeleteByID(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return book.ErrNotFound
	}
	delete(m.books, id)
	return nil
}
