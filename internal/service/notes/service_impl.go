package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/platform/logger"
	"github.com/danbi/vocadrill/internal/store"
)

const (
	// defaultPageSize is used when a listing omits the page size.
	defaultPageSize = 20

	// maxPageSize caps client-requested page sizes.
	maxPageSize = 100
)

// NoteRepository defines the slice of note storage this service needs.
// store.NoteStore satisfies it.
type NoteRepository interface {
	RecordWrong(ctx context.Context, userID, wordID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewNote, error)
	List(ctx context.Context, userID uuid.UUID, filter store.NoteFilter) ([]domain.NoteDetail, int64, error)
	ListStarred(ctx context.Context, userID uuid.UUID) ([]domain.NoteDetail, error)
	Update(ctx context.Context, id, userID uuid.UUID, note string, starred *bool) (int64, error)
	SetStarred(ctx context.Context, id, userID uuid.UUID, starred bool) (int64, error)
	ToggleStarred(ctx context.Context, id, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (int64, error)
	GetOwners(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]uuid.UUID, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error)
}

// Verify interface compliance at compile time
var _ NoteService = (*noteServiceImpl)(nil)

// noteServiceImpl implements the NoteService interface.
type noteServiceImpl struct {
	noteRepo NoteRepository
	logger   *slog.Logger

	// now is swappable in tests so preset date ranges are stable.
	now func() time.Time
}

// NewNoteService creates a new NoteService implementation.
func NewNoteService(noteRepo NoteRepository, logger *slog.Logger) NoteService {
	if noteRepo == nil {
		panic("noteRepo cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &noteServiceImpl{
		noteRepo: noteRepo,
		logger:   logger.With(slog.String("component", "note_service")),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordWrong implements NoteService.RecordWrong.
func (s *noteServiceImpl) RecordWrong(ctx context.Context, userID, wordID uuid.UUID) error {
	if userID == uuid.Nil || wordID == uuid.Nil {
		return domain.ErrInvalidID
	}

	if err := s.noteRepo.RecordWrong(ctx, userID, wordID); err != nil {
		return &ServiceError{Operation: "record_wrong", Message: "failed to record wrong answer", Err: err}
	}
	return nil
}

// List implements NoteService.List.
func (s *noteServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	query ListQuery,
) (*Listing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	filter := store.NoteFilter{
		Category: query.Category,
		Sort:     store.NoteSortLatest,
		Page:     query.Page,
		Size:     query.Size,
	}
	if query.Sort == string(store.NoteSortLastWrong) {
		filter.Sort = store.NoteSortLastWrong
	}
	if filter.Page < 0 {
		filter.Page = 0
	}
	if filter.Size <= 0 {
		filter.Size = defaultPageSize
	}
	if filter.Size > maxPageSize {
		filter.Size = maxPageSize
	}
	filter.From, filter.To = s.dateRange(query)

	items, total, err := s.noteRepo.List(ctx, userID, filter)
	if err != nil {
		log.Error("failed to list notes",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, &ServiceError{Operation: "list", Message: "failed to list notes", Err: err}
	}

	return &Listing{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.Size,
	}, nil
}

// ListStarred implements NoteService.ListStarred.
func (s *noteServiceImpl) ListStarred(ctx context.Context, userID uuid.UUID) ([]domain.NoteDetail, error) {
	items, err := s.noteRepo.ListStarred(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "list_starred", Message: "failed to list starred notes", Err: err}
	}
	return items, nil
}

// Update implements NoteService.Update.
func (s *noteServiceImpl) Update(
	ctx context.Context,
	noteID, userID uuid.UUID,
	note string,
	starred *bool,
) (*domain.ReviewNote, error) {
	rows, err := s.noteRepo.Update(ctx, noteID, userID, note, starred)
	if err != nil {
		return nil, &ServiceError{Operation: "update", Message: "failed to update note", Err: err}
	}
	if rows == 0 {
		return nil, s.classifyMiss(ctx, noteID, userID, "update")
	}

	return s.reload(ctx, noteID, "update")
}

// SetStarred implements NoteService.SetStarred.
func (s *noteServiceImpl) SetStarred(
	ctx context.Context,
	noteID, userID uuid.UUID,
	starred bool,
) (*domain.ReviewNote, error) {
	rows, err := s.noteRepo.SetStarred(ctx, noteID, userID, starred)
	if err != nil {
		return nil, &ServiceError{Operation: "set_starred", Message: "failed to update star", Err: err}
	}
	if rows == 0 {
		return nil, s.classifyMiss(ctx, noteID, userID, "set_starred")
	}

	return s.reload(ctx, noteID, "set_starred")
}

// ToggleStarred implements NoteService.ToggleStarred.
func (s *noteServiceImpl) ToggleStarred(
	ctx context.Context,
	noteID, userID uuid.UUID,
) (*domain.ReviewNote, error) {
	rows, err := s.noteRepo.ToggleStarred(ctx, noteID, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "toggle_starred", Message: "failed to toggle star", Err: err}
	}
	if rows == 0 {
		return nil, s.classifyMiss(ctx, noteID, userID, "toggle_starred")
	}

	return s.reload(ctx, noteID, "toggle_starred")
}

// Delete implements NoteService.Delete.
func (s *noteServiceImpl) Delete(ctx context.Context, noteID, userID uuid.UUID) error {
	rows, err := s.noteRepo.Delete(ctx, noteID, userID)
	if err != nil {
		return &ServiceError{Operation: "delete", Message: "failed to delete note", Err: err}
	}
	if rows == 0 {
		return s.classifyMiss(ctx, noteID, userID, "delete")
	}
	return nil
}

// DeleteMany implements NoteService.DeleteMany.
func (s *noteServiceImpl) DeleteMany(
	ctx context.Context,
	noteIDs []uuid.UUID,
	userID uuid.UUID,
) (*BulkDeleteResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result := &BulkDeleteResult{}
	if len(noteIDs) == 0 {
		result.Message = summarize(result)
		return result, nil
	}

	owners, err := s.noteRepo.GetOwners(ctx, noteIDs)
	if err != nil {
		return nil, &ServiceError{Operation: "delete_many", Message: "failed to resolve note owners", Err: err}
	}

	seen := make(map[uuid.UUID]struct{}, len(noteIDs))
	for _, id := range noteIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		owner, exists := owners[id]
		switch {
		case !exists:
			result.NotFound = append(result.NotFound, id)
		case owner != userID:
			result.NotOwned = append(result.NotOwned, id)
		default:
			result.Deleted = append(result.Deleted, id)
		}
	}

	if len(result.Deleted) > 0 {
		if _, err := s.noteRepo.DeleteMany(ctx, result.Deleted, userID); err != nil {
			return nil, &ServiceError{Operation: "delete_many", Message: "failed to delete notes", Err: err}
		}
	}

	result.Message = summarize(result)
	log.Info("bulk note delete",
		slog.String("user_id", userID.String()),
		slog.Int("deleted", len(result.Deleted)),
		slog.Int("not_found", len(result.NotFound)),
		slog.Int("not_owned", len(result.NotOwned)))

	return result, nil
}

// classifyMiss turns a zero-row conditional write into ErrNoteNotFound
// or ErrNotOwner by checking whether the note exists at all.
func (s *noteServiceImpl) classifyMiss(
	ctx context.Context,
	noteID, userID uuid.UUID,
	operation string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		return &ServiceError{Operation: operation, Message: "failed to check note", Err: err}
	}

	log.Warn("note operation on foreign note",
		slog.String("note_id", noteID.String()),
		slog.String("user_id", userID.String()),
		slog.String("operation", operation))
	return ErrNotOwner
}

// reload fetches the note after a successful write.
func (s *noteServiceImpl) reload(ctx context.Context, noteID uuid.UUID, operation string) (*domain.ReviewNote, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, &ServiceError{Operation: operation, Message: "failed to reload note", Err: err}
	}
	return note, nil
}

// dateRange resolves the query's date preset into last-wrong bounds.
func (s *noteServiceImpl) dateRange(query ListQuery) (*time.Time, *time.Time) {
	today := startOfDay(s.now())
	tomorrow := today.AddDate(0, 0, 1)

	switch query.Date {
	case DateFilterOneMonth:
		from := today.AddDate(0, -1, 0)
		return &from, &tomorrow
	case DateFilterThreeMonths:
		from := today.AddDate(0, -3, 0)
		return &from, &tomorrow
	case DateFilterLastMonth:
		thisMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		lastMonth := thisMonth.AddDate(0, -1, 0)
		return &lastMonth, &thisMonth
	case DateFilterCustom:
		return parseDateBounds(query.From, query.To)
	default:
		return nil, nil
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDateBounds converts optional YYYY-MM-DD strings into an
// inclusive-from, exclusive-to range. Unparseable values are ignored.
func parseDateBounds(from, to string) (*time.Time, *time.Time) {
	var fromTime, toTime *time.Time
	if from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			fromTime = &t
		}
	}
	if to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.AddDate(0, 0, 1)
			toTime = &end
		}
	}
	return fromTime, toTime
}

// summarize renders the partition counts for display.
func summarize(r *BulkDeleteResult) string {
	return fmt.Sprintf("%d deleted, %d not found, %d not owned",
		len(r.Deleted), len(r.NotFound), len(r.NotOwned))
}
