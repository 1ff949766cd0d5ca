package book

import (
	"context"
	"strings"
)

// Service provides book-related business logic on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every stored book. The result is never nil.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get returns the book with the given id.
func (s *Service) Get(ctx context.Context, id int) (Book, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new book. An existing id is a conflict; the stored row is left alone.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	if err := Validate(b); err != nil {
		return Book{}, err
	}
	return s.repo.Insert(ctx, b)
}

// Upsert stores a valid book whether or not its id already exists.
func (s *Service) Upsert(ctx context.Context, b Book) (Book, error) {
	if err := Validate(b); err != nil {
		return Book{}, err
	}
	return s.repo.Save(ctx, b)
}

// Replace overwrites every field of an existing book. A zero body id
// takes the path id; any other mismatch is rejected.
func (s *Service) Replace(ctx context.Context, id int, b Book) error {
	if b.ID == 0 {
		b.ID = id
	}
	if b.ID != id {
		return invalidField("id", "id must match the resource path")
	}
	if err := Validate(b); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	_, err := s.repo.Save(ctx, b)
	return err
}

// UpdateAuthor changes only the author of an existing book.
func (s *Service) UpdateAuthor(ctx context.Context, id int, author string) error {
	author = strings.TrimSpace(author)
	if err := validateAuthor(author); err != nil {
		return err
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	b.Author = author
	_, err = s.repo.Save(ctx, b)
	return err
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteByID(ctx, id)
}
