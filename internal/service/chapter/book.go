package chapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/scripture-backend/internal/domain"
)

// PopulateReport summarizes a full-book population run.
type PopulateReport struct {
	Chapters int
	Verses   int
	// Incomplete counts chapters left NOT_POPULATED by a provider failure.
	Incomplete int
}

// PopulateBook creates every chapter row of the book and populates chapters
// 1..ChapterCount in order. It stops at the first store error or when ctx ends.
func (s *Service) PopulateBook(ctx context.Context, bookID uuid.UUID) (PopulateReport, error) {
	var report PopulateReport

	chapters, err := s.ListChapters(ctx, bookID)
	if err != nil {
		return report, err
	}

	for _, row := range chapters {
		if row.IsIntro() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("populate book %s: %w", bookID, err)
		}

		ch, err := s.GetFullChapter(ctx, bookID, row.Number)
		if err != nil {
			return report, fmt.Errorf("populate chapter %d: %w", row.Number, err)
		}

		report.Chapters++
		report.Verses += len(ch.Verses)
		if ch.Status != domain.ChapterStatusPopulated {
			report.Incomplete++
		}
	}

	s.log.InfoContext(ctx, "book populated",
		slog.String("book_id", bookID.String()),
		slog.Int("chapters", report.Chapters),
		slog.Int("verses", report.Verses),
		slog.Int("incomplete", report.Incomplete),
	)

	return report, nil
}
