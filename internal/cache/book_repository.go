package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"bookshelf/internal/book"
)

// BookRepository caches FindByID results and drops the entry on every write
// to the same id. Cache failures fall through to the wrapped repository.
//
// Each id carries a version counter that writes bump after the store commits.
// Entries are tagged with the version read before the store lookup, so an
// entry filled by a read that raced a write no longer matches and is ignored.
type BookRepository struct {
	next   book.Repository
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

var _ book.Repository = (*BookRepository)(nil)

type entry struct {
	Version int64     `json:"v"`
	Book    book.Book `json:"book"`
}

func NewBookRepository(next book.Repository, store Store, ttl time.Duration, logger *slog.Logger) *BookRepository {
	return &BookRepository{next: next, store: store, ttl: ttl, logger: logger}
}

func bookKey(id int) string {
	return "book:" + strconv.Itoa(id)
}

func versionKey(id int) string {
	return "book:" + strconv.Itoa(id) + ":version"
}

func (r *BookRepository) FindAll(ctx context.Context) ([]book.Book, error) {
	return r.next.FindAll(ctx)
}

func (r *BookRepository) FindByID(ctx context.Context, id int) (book.Book, error) {
	key := bookKey(id)

	version, err := r.version(id)
	if err != nil {
		// Without a version no entry can be trusted or written.
		r.logger.Warn("cache version read failed", "key", versionKey(id), "error", err)
		return r.next.FindByID(ctx, id)
	}

	if b, ok := r.lookup(key, version); ok {
		return b, nil
	}

	b, err := r.next.FindByID(ctx, id)
	if err != nil {
		return book.Book{}, err
	}

	if raw, err := json.Marshal(entry{Version: version, Book: b}); err == nil {
		if err := r.store.Set(key, raw, r.ttl); err != nil {
			r.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return b, nil
}

func (r *BookRepository) Save(ctx context.Context, b book.Book) (book.Book, error) {
	saved, err := r.next.Save(ctx, b)
	r.invalidate(b.ID)
	return saved, err
}

func (r *BookRepository) Insert(ctx context.Context, b book.Book) (book.Book, error) {
	inserted, err := r.next.Insert(ctx, b)
	if err == nil {
		r.invalidate(b.ID)
	}
	return inserted, err
}

func (r *BookRepository) DeleteByID(ctx context.Context, id int) error {
	err := r.next.DeleteByID(ctx, id)
	r.invalidate(id)
	return err
}

// lookup returns the cached book when an entry exists for the current version.
func (r *BookRepository) lookup(key string, version int64) (book.Book, bool) {
	raw, err := r.store.Get(key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			r.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return book.Book{}, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		r.logger.Warn("discarding corrupt cache entry", "key", key)
		r.drop(key)
		return book.Book{}, false
	}
	if e.Version != version {
		return book.Book{}, false
	}
	return e.Book, true
}

func (r *BookRepository) version(id int) (int64, error) {
	raw, err := r.store.Get(versionKey(id))
	if errors.Is(err, ErrMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

func (r *BookRepository) invalidate(id int) {
	if _, err := r.store.Incr(versionKey(id)); err != nil {
		r.logger.Warn("cache version bump failed", "key", versionKey(id), "error", err)
	}
	r.drop(bookKey(id))
}

func (r *BookRepository) drop(key string) {
	if err := r.store.Del(key); err != nil {
		r.logger.Warn("cache invalidation failed", "key", key, "error", err)
	}
}
