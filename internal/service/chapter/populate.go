package chapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/scripture-backend/internal/domain"
	"github.com/heartmarshall/scripture-backend/internal/provider"
)

// outcome is the reason a population pass stopped.
type outcome string

const (
	outcomeContentMatch outcome = "content_match"
	outcomeEndOfChapter outcome = "end_of_chapter"
	outcomeLimit        outcome = "limit"
	outcomeFetchError   outcome = "fetch_error"
)

// status maps a pass outcome to the stored chapter status. Only a failed fetch
// leaves the chapter open for the next read to resume.
func (o outcome) status() domain.ChapterStatus {
	if o == outcomeFetchError {
		return domain.ChapterStatusNotPopulated
	}
	return domain.ChapterStatusPopulated
}

// populate runs one population pass for a chapter. It resumes after the last
// stored verse and records the verse counter and status when it stops.
func (s *Service) populate(ctx context.Context, book *domain.Book, number int) (*domain.Chapter, error) {
	ch, err := s.chapters.GetOrCreate(ctx, book.ID, number)
	if err != nil {
		return nil, fmt.Errorf("get chapter: %w", err)
	}
	if err := s.loadVerses(ctx, ch); err != nil {
		return nil, err
	}
	// A pass that completed just before this flight started.
	if !ch.Status.NeedsPopulation() {
		return ch, nil
	}

	tr, err := s.translations.GetByID(ctx, book.TranslationID)
	if err != nil {
		return nil, fmt.Errorf("resolve translation: %w", err)
	}

	if err := s.chapters.UpdateProgress(ctx, ch.ID, ch.VerseCount, domain.ChapterStatusPopulating); err != nil {
		return nil, fmt.Errorf("mark chapter populating: %w", err)
	}

	prev, next := "", 1
	if last := ch.LastVerse(); last != nil {
		prev, next = last.Content, last.Number+1
	}
	resumed := next > 1

	counter := next
	var stop outcome

	for n := next; ; n++ {
		if n > s.cfg.MaxVerses {
			stop = outcomeLimit
			break
		}

		content, err := s.fetchVerse(ctx, tr.ProviderID, book.ProviderID, number, n)
		if err != nil {
			counter = n
			if provider.IsNotFound(err) {
				stop = outcomeEndOfChapter
			} else {
				stop = outcomeFetchError
				s.log.WarnContext(ctx, "verse fetch failed, keeping partial chapter",
					slog.String("book", book.Slug),
					slog.Int("chapter", number),
					slog.Int("verse", n),
					slog.String("error", err.Error()),
				)
			}
			break
		}

		counter = n + 1
		if content == prev {
			stop = outcomeContentMatch
			break
		}

		now := s.now()
		v := domain.Verse{
			ID:        uuid.New(),
			ChapterID: ch.ID,
			Number:    n,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.verses.Create(ctx, &v); err != nil {
			s.release(ctx, ch.ID, n)
			return nil, fmt.Errorf("store verse %d: %w", n, err)
		}

		ch.Verses = append(ch.Verses, v)
		prev = content
	}

	if stop == outcomeLimit {
		s.log.WarnContext(ctx, "verse cap reached, chapter marked populated",
			slog.String("book", book.Slug),
			slog.Int("chapter", number),
			slog.Int("max_verses", s.cfg.MaxVerses),
		)
	}

	// Progress is recorded even when the pass ran out of time.
	status := stop.status()
	if err := s.chapters.UpdateProgress(context.WithoutCancel(ctx), ch.ID, counter, status); err != nil {
		return nil, fmt.Errorf("record chapter progress: %w", err)
	}
	ch.VerseCount = counter
	ch.Status = status

	s.log.InfoContext(ctx, "chapter population pass finished",
		slog.String("book", book.Slug),
		slog.Int("chapter", number),
		slog.String("outcome", string(stop)),
		slog.Int("verses", len(ch.Verses)),
		slog.Int("verse_count", counter),
		slog.Bool("resumed", resumed),
	)

	return ch, nil
}

// fetchVerse bounds a single provider call with the verse timeout. A timeout is
// an ordinary fetch error.
func (s *Service) fetchVerse(ctx context.Context, translationProviderID, bookProviderID string, chapter, verse int) (string, error) {
	if s.cfg.VerseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.VerseTimeout)
		defer cancel()
	}

	res, err := s.provider.FetchVerse(ctx, translationProviderID, bookProviderID, chapter, verse)
	if err != nil {
		return "", err
	}
	if res == nil {
		return "", fmt.Errorf("verse %d: empty result: %w", verse, provider.ErrMalformed)
	}
	return res.Content, nil
}

// release puts a chapter whose pass failed on a store error back to NOT_POPULATED.
func (s *Service) release(ctx context.Context, chapterID uuid.UUID, counter int) {
	if err := s.chapters.UpdateProgress(context.WithoutCancel(ctx), chapterID, counter, domain.ChapterStatusNotPopulated); err != nil {
		s.log.ErrorContext(ctx, "release chapter after store failure",
			slog.String("chapter_id", chapterID.String()),
			slog.String("error", err.Error()),
		)
	}
}
