package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"bookshelf/internal/httpx"

	"github.com/go-chi/chi/v5"
)

type HTTPHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewHTTPHandler(service *Service, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

// Mount registers the collection and item routes on r. Methods that are not
// registered for a path are answered with 405 by the router.
func (h *HTTPHandler) Mount(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Replace)
	r.Patch("/{id}", h.UpdateAuthor)
	r.Delete("/{id}", h.Delete)
}

// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} Book
// @Failure 404 {string} string "not found"
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}
	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get", err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// @Summary Create book
// @Tags books
// @Accept json
// @Produce json
// @Param book body Book true "Book"
// @Success 201 {object} Book
// @Failure 400 {string} string "bad resource"
// @Failure 409 {string} string "already exists"
// @Failure 413 {string} string "body too large"
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in Book
	if err := decodeBook(r, &in); err != nil {
		h.fail(w, r, "create", err)
		return
	}
	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	location := strings.TrimSuffix(r.URL.Path, "/") + "/" + strconv.Itoa(created.ID)
	w.Header().Set("Location", location)
	httpx.JSON(w, http.StatusCreated, created)
}

// @Summary Replace book
// @Tags books
// @Accept json
// @Param id path int true "Book id"
// @Param book body Book true "Book"
// @Success 200 {string} string "ok"
// @Failure 400 {string} string "bad resource"
// @Failure 404 {string} string "not found"
// @Failure 413 {string} string "body too large"
// @Router /books/{id} [put]
func (h *HTTPHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}
	var in Book
	if err := decodeBook(r, &in); err != nil {
		h.fail(w, r, "replace", err)
		return
	}
	if err := h.service.Replace(r.Context(), id, in); err != nil {
		h.fail(w, r, "replace", err)
		return
	}
	httpx.Status(w, http.StatusOK)
}

// @Summary Update book author
// @Tags books
// @Accept plain
// @Param id path int true "Book id"
// @Param author body string true "New author"
// @Success 200 {string} string "ok"
// @Failure 400 {string} string "bad resource"
// @Failure 404 {string} string "not found"
// @Failure 413 {string} string "body too large"
// @Router /books/{id} [patch]
func (h *HTTPHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}
	author, err := readAuthor(r)
	if err != nil {
		h.fail(w, r, "update author", err)
		return
	}
	if err := h.service.UpdateAuthor(r.Context(), id, author); err != nil {
		h.fail(w, r, "update author", err)
		return
	}
	httpx.Status(w, http.StatusOK)
}

// @Summary Delete book
// @Tags books
// @Param id path int true "Book id"
// @Success 200 {string} string "ok"
// @Failure 404 {string} string "not found"
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete", err)
		return
	}
	httpx.Status(w, http.StatusOK)
}

// bookID parses the {id} path segment. An id that is not an integer, or does
// not fit the int4 id column, cannot name a book, so it is answered like an
// unknown one.
func (h *HTTPHandler) bookID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		h.logger.Warn("invalid book id",
			"request_id", httpx.RequestIDFrom(r),
			"id", raw,
		)
		httpx.Status(w, http.StatusNotFound)
		return 0, false
	}
	return int(id), true
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	attrs := []any{
		"op", op,
		"status", status,
		"request_id", httpx.RequestIDFrom(r),
		"error", err.Error(),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("book request failed", attrs...)
	} else {
		h.logger.Warn("book request rejected", attrs...)
	}
	httpx.Status(w, status)
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrBadResource):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBook(r *http.Request, dst *Book) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode body: %w", ErrBadResource, err)
	}
	return nil
}

// readAuthor takes the raw body as the author. A JSON request may send the
// author as a JSON string instead.
func readAuthor(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrBadResource, err)
	}
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "application/json" {
		var author string
		if err := json.Unmarshal(body, &author); err != nil {
			return "", fmt.Errorf("%w: author must be a JSON string: %v", ErrBadResource, err)
		}
		return author, nil
	}
	return string(body), nil
}
