package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/scripture-backend/internal/domain"
)

type translationService interface {
	ListAll(ctx context.Context) ([]domain.Translation, error)
	Resolve(ctx context.Context, slug string) (*domain.Translation, error)
}

type bookService interface {
	ListByTranslation(ctx context.Context, translationID uuid.UUID) ([]domain.Book, error)
	ResolveByAbbreviationOrSlug(ctx context.Context, translationID uuid.UUID, ref string) (*domain.Book, error)
}

type chapterService interface {
	GetFullChapter(ctx context.Context, bookID uuid.UUID, number int) (*domain.Chapter, error)
	GetChapterByReference(ctx context.Context, translationSlug, bookRef string, number int) (*domain.Chapter, error)
	ListChapters(ctx context.Context, bookID uuid.UUID) ([]domain.Chapter, error)
}

// ScriptureHandler serves the read API over the cache tiers.
type ScriptureHandler struct {
	translations translationService
	books        bookService
	chapters     chapterService
	log          *slog.Logger
}

// NewScriptureHandler creates a ScriptureHandler.
func NewScriptureHandler(
	translations translationService,
	books bookService,
	chapters chapterService,
	logger *slog.Logger,
) *ScriptureHandler {
	return &ScriptureHandler{
		translations: translations,
		books:        books,
		chapters:     chapters,
		log:          logger.With("handler", "scripture"),
	}
}

// ListTranslations handles GET /translations.
func (h *ScriptureHandler) ListTranslations(w http.ResponseWriter, r *http.Request) {
	list, err := h.translations.ListAll(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]translationResponse, 0, len(list))
	for i := range list {
		items = append(items, toTranslationResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, newList(items))
}

// GetTranslation handles GET /translations/{translation}.
func (h *ScriptureHandler) GetTranslation(w http.ResponseWriter, r *http.Request) {
	tr, err := h.translations.Resolve(r.Context(), chi.URLParam(r, "translation"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTranslationResponse(tr))
}

// ListBooks handles GET /translations/{translation}/books.
func (h *ScriptureHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	tr, err := h.translations.Resolve(r.Context(), chi.URLParam(r, "translation"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.books.ListByTranslation(r.Context(), tr.ID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]bookResponse, 0, len(list))
	for i := range list {
		items = append(items, toBookResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, newList(items))
}

// GetBook handles GET /translations/{translation}/books/{book}. The book
// segment is an abbreviation, a provider id or a slug.
func (h *ScriptureHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, ok := h.resolveBook(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(book))
}

// ListChapters handles GET /translations/{translation}/books/{book}/chapters.
// Verses are not included.
func (h *ScriptureHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	book, ok := h.resolveBook(w, r)
	if !ok {
		return
	}

	list, err := h.chapters.ListChapters(r.Context(), book.ID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]chapterResponse, 0, len(list))
	for i := range list {
		items = append(items, toChapterResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, newList(items))
}

// GetChapterByReference handles
// GET /translations/{translation}/books/{book}/chapters/{number}.
func (h *ScriptureHandler) GetChapterByReference(w http.ResponseWriter, r *http.Request) {
	number, err := chapterNumber(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	ch, err := h.chapters.GetChapterByReference(r.Context(),
		chi.URLParam(r, "translation"), chi.URLParam(r, "book"), number)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toChapterResponse(ch))
}

// GetChapter handles GET /books/{bookID}/chapters/{number}.
func (h *ScriptureHandler) GetChapter(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(chi.URLParam(r, "bookID"))
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("book_id", "must be a UUID"))
		return
	}

	number, err := chapterNumber(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	ch, err := h.chapters.GetFullChapter(r.Context(), bookID, number)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toChapterResponse(ch))
}

func (h *ScriptureHandler) resolveBook(w http.ResponseWriter, r *http.Request) (*domain.Book, bool) {
	tr, err := h.translations.Resolve(r.Context(), chi.URLParam(r, "translation"))
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, false
	}

	book, err := h.books.ResolveByAbbreviationOrSlug(r.Context(), tr.ID, chi.URLParam(r, "book"))
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, false
	}

	return book, true
}

// chapterNumber parses the {number} segment; "intro" addresses chapter 0.
func chapterNumber(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "number")
	if raw == "intro" {
		return domain.IntroChapterNumber, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError("chapter", "must be an integer or \"intro\"")
	}
	return n, nil
}
