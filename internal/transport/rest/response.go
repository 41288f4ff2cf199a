package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/scripture-backend/internal/domain"
)

type translationResponse struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Language     string `json:"language"`
	LanguageCode string `json:"languageCode,omitempty"`
	Version      string `json:"version"`
	Description  string `json:"description,omitempty"`
	BookCount    int    `json:"bookCount"`
}

type bookResponse struct {
	ID            string `json:"id"`
	TranslationID string `json:"translationId"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Abbreviation  string `json:"abbreviation"`
	Order         int    `json:"order"`
	ChapterCount  int    `json:"chapterCount"`
}

type chapterResponse struct {
	ID         string          `json:"id"`
	BookID     string          `json:"bookId"`
	Number     int             `json:"number"`
	Intro      bool            `json:"intro"`
	Status     string          `json:"status"`
	VerseCount int             `json:"verseCount"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Verses     []verseResponse `json:"verses,omitempty"`
}

type verseResponse struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Total: len(items)}
}

func toTranslationResponse(t *domain.Translation) translationResponse {
	return translationResponse{
		ID:           t.ID.String(),
		Slug:         t.Slug,
		Name:         t.Name,
		Language:     t.Language,
		LanguageCode: t.LanguageCode,
		Version:      t.Version,
		Description:  t.Description,
		BookCount:    t.BookCount,
	}
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:            b.ID.String(),
		TranslationID: b.TranslationID.String(),
		Slug:          b.Slug,
		Name:          b.Name,
		Abbreviation:  b.Abbreviation,
		Order:         b.Order,
		ChapterCount:  b.ChapterCount,
	}
}

func toChapterResponse(c *domain.Chapter) chapterResponse {
	resp := chapterResponse{
		ID:         c.ID.String(),
		BookID:     c.BookID.String(),
		Number:     c.Number,
		Intro:      c.IsIntro(),
		Status:     c.Status.String(),
		VerseCount: c.VerseCount,
		UpdatedAt:  c.UpdatedAt,
	}
	if len(c.Verses) > 0 {
		resp.Verses = make([]verseResponse, 0, len(c.Verses))
		for _, v := range c.Verses {
			resp.Verses = append(resp.Verses, verseResponse{Number: v.Number, Content: v.Content})
		}
	}
	return resp
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleError maps domain errors to HTTP status codes.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrProvider):
		log.WarnContext(r.Context(), "content provider error", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "content provider unavailable")
	case errors.Is(err, domain.ErrSlugCollisionExhausted):
		log.ErrorContext(r.Context(), "slug collision exhausted", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
