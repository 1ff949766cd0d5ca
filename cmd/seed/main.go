package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

var sampleBooks = []book.Book{
	{ID: 1, Name: "Dune", Author: "Frank Herbert"},
	{ID: 2, Name: "The Left Hand of Darkness", Author: "Ursula K. Le Guin"},
	{ID: 3, Name: "Neuromancer", Author: "William Gibson"},
	{ID: 4, Name: "Foundation", Author: "Isaac Asimov"},
	{ID: 5, Name: "Hyperion", Author: "Dan Simmons"},
}

func main() {
	file := flag.String("file", "", "JSON array of books to load; built-in samples when empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("cannot load configuration", "error", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.LogLevel)

	books := sampleBooks
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Error("cannot open seed file", "file", *file, "error", err)
			os.Exit(1)
		}
		books, err = readBooks(f)
		f.Close()
		if err != nil {
			log.Error("cannot read seed file", "file", *file, "error", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error("cannot connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	service := book.NewService(book.NewPostgresRepo(pool, cfg.DatabaseSchema, cfg.DatabaseTimeout))
	n, err := seed(ctx, service, books)
	if err != nil {
		log.Error("seeding stopped", "saved", n, "error", err)
		os.Exit(1)
	}
	log.Info("seeding finished", "saved", n)
}

func readBooks(r io.Reader) ([]book.Book, error) {
	var books []book.Book
	if err := json.NewDecoder(r).Decode(&books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

// seed saves every book, replacing rows that already exist, and stops at
// the first invalid book or store failure.
func seed(ctx context.Context, service *book.Service, books []book.Book) (int, error) {
	for i, b := range books {
		if _, err := service.Upsert(ctx, b); err != nil {
			return i, fmt.Errorf("book #%d: %w", i, err)
		}
	}
	return len(books), nil
}
