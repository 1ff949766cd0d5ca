package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
// Absence is reported as ErrNotFound, never as a zero Book with a nil error.
type Repository interface {
	// FindAll returns every stored book, or an empty slice.
	FindAll(ctx context.Context) ([]Book, error)
	// FindByID returns the book with the given id or ErrNotFound.
	FindByID(ctx context.Context, id int) (Book, error)
	// Save overwrites every field of the row with b.ID, inserting it when absent.
	Save(ctx context.Context, b Book) (Book, error)
	// Insert stores a new row and fails with ErrAlreadyExists on an id collision.
	Insert(ctx context.Context, b Book) (Book, error)
	// DeleteByID removes the row or returns ErrNotFound.
	DeleteByID(ctx context.Context, id int) error
}
