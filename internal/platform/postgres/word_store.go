package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/store"
)

// wordColumns is the scan list shared by every word query.
const wordColumns = "id, term, reading, meaning, example, category, created_at"

// WordStore implements the store.WordStore interface using a PostgreSQL
// database as the storage backend. The corpus is read-only from this
// service's point of view.
type WordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewWordStore creates a new PostgreSQL implementation of the WordStore
// interface. It accepts a database connection managed by the caller.
// If logger is nil, a default logger will be used.
func NewWordStore(db store.DBTX, logger *slog.Logger) *WordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &WordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure WordStore implements store.WordStore interface
var _ store.WordStore = (*WordStore)(nil)

// GetByID implements store.WordStore.GetByID.
func (s *WordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+wordColumns+" FROM words WHERE id = $1", id)

	word, err := scanWord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordNotFound
		}
		return nil, store.NewStoreError("word", "get", "failed to query word", err)
	}
	return word, nil
}

// GetByIDs implements store.WordStore.GetByIDs.
func (s *WordStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Word, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+wordColumns+" FROM words WHERE id = ANY($1::uuid[])", uuidStrings(ids))
	if err != nil {
		return nil, store.NewStoreError("word", "get_by_ids", "failed to query words", err)
	}
	defer func() { _ = rows.Close() }()

	return collectWords(rows)
}

// SampleRandom implements store.WordStore.SampleRandom.
func (s *WordStore) SampleRandom(ctx context.Context, n int) ([]*domain.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+wordColumns+" FROM words ORDER BY random() LIMIT $1", n)
	if err != nil {
		return nil, store.NewStoreError("word", "sample", "failed to sample words", err)
	}
	defer func() { _ = rows.Close() }()

	return collectWords(rows)
}

// SampleRandomByCategory implements store.WordStore.SampleRandomByCategory.
// Category comparison collapses all whitespace so "customer care" and
// "customercare" style variants match, mirroring how categories were
// entered by hand.
func (s *WordStore) SampleRandomByCategory(
	ctx context.Context,
	category string,
	n int,
) ([]*domain.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wordColumns+`
		   FROM words
		  WHERE regexp_replace(category, '\s+', '', 'g') =
		        regexp_replace($1, '\s+', '', 'g')
		  ORDER BY random()
		  LIMIT $2`,
		category, n)
	if err != nil {
		return nil, store.NewStoreError("word", "sample_category", "failed to sample words", err)
	}
	defer func() { _ = rows.Close() }()

	return collectWords(rows)
}

// SampleDistractors implements store.WordStore.SampleDistractors.
func (s *WordStore) SampleDistractors(
	ctx context.Context,
	direction domain.Direction,
	category string,
	excludeID uuid.UUID,
	limit int,
) ([]string, error) {
	// Which side of the word supplies the distractor texts depends on
	// the question direction: forward questions offer meanings, reverse
	// questions offer terms.
	column := "meaning"
	if direction == domain.DirectionReverse {
		column = "term"
	}

	query := fmt.Sprintf(`SELECT candidate FROM (
		  SELECT DISTINCT %s AS candidate
		    FROM words
		   WHERE regexp_replace(category, '\s+', '', 'g') =
		         regexp_replace($1, '\s+', '', 'g')
		     AND id <> $2
		     AND btrim(%s) <> ''
		) candidates
		ORDER BY random()
		LIMIT $3`, column, column)

	rows, err := s.db.QueryContext(ctx, query, category, excludeID, limit)
	if err != nil {
		return nil, store.NewStoreError("word", "sample_distractors", "failed to sample distractors", err)
	}
	defer func() { _ = rows.Close() }()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, store.NewStoreError("word", "sample_distractors", "failed to scan candidate", err)
		}
		texts = append(texts, text)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("word", "sample_distractors", "failed to read candidates", err)
	}

	return texts, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var w domain.Word
	err := row.Scan(&w.ID, &w.Term, &w.Reading, &w.Meaning, &w.Example, &w.Category, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func collectWords(rows *sql.Rows) ([]*domain.Word, error) {
	var words []*domain.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, store.NewStoreError("word", "scan", "failed to scan word", err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("word", "scan", "failed to read words", err)
	}
	return words, nil
}

// uuidStrings renders a uuid slice as text for ANY($1::uuid[]) binds.
func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
