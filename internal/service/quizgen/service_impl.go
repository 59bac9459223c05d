package quizgen

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/cache"
	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/platform/logger"
	"github.com/danbi/vocadrill/internal/store"
)

const (
	// defaultQuestionCount is used when a request omits the count.
	defaultQuestionCount = 10

	// defaultDistractorPool is how many wrong-option candidates are
	// fetched per word before trimming to the option count.
	defaultDistractorPool = 20

	// minDistractors is the minimum number of distinct wrong options a
	// question needs alongside its correct one.
	minDistractors = domain.OptionCount - 1

	// notesPoolCap bounds how many review notes are loaded as question
	// candidates for a notes-based quiz.
	notesPoolCap = 500
)

// Config carries the tunables of the generation service. Zero values
// fall back to the package defaults.
type Config struct {
	DefaultCount   int
	DistractorPool int
}

// Verify interface compliance at compile time
var _ QuizGenerationService = (*quizGenerationServiceImpl)(nil)

// quizGenerationServiceImpl implements the QuizGenerationService interface.
type quizGenerationServiceImpl struct {
	wordRepo WordRepository
	noteRepo NoteRepository
	audit    AuditRepository
	papers   cache.PaperCache
	cfg      Config
	logger   *slog.Logger
}

// NewQuizGenerationService creates a new QuizGenerationService
// implementation. audit may be nil, in which case generated questions
// are not recorded.
func NewQuizGenerationService(
	wordRepo WordRepository,
	noteRepo NoteRepository,
	audit AuditRepository,
	papers cache.PaperCache,
	cfg Config,
	logger *slog.Logger,
) QuizGenerationService {
	if wordRepo == nil {
		panic("wordRepo cannot be nil")
	}
	if noteRepo == nil {
		panic("noteRepo cannot be nil")
	}
	if papers == nil {
		panic("papers cannot be nil")
	}

	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = defaultQuestionCount
	}
	if cfg.DistractorPool < minDistractors {
		cfg.DistractorPool = defaultDistractorPool
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &quizGenerationServiceImpl{
		wordRepo: wordRepo,
		noteRepo: noteRepo,
		audit:    audit,
		papers:   papers,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "quizgen_service")),
	}
}

// Generate implements QuizGenerationService.Generate.
func (s *quizGenerationServiceImpl) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req GenerateRequest,
) (*domain.QuizView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	count := req.Count
	if count <= 0 {
		count = s.cfg.DefaultCount
	}
	direction := req.Direction
	if direction == "" {
		direction = domain.DirectionForward
	}
	category, allCategories := normalizeCategory(req.Category)

	log.Debug("generating quiz",
		slog.String("user_id", userID.String()),
		slog.String("category", category),
		slog.String("direction", string(direction)),
		slog.Int("count", count))

	var (
		words []*domain.Word
		err   error
	)
	if allCategories {
		words, err = s.wordRepo.SampleRandom(ctx, count)
	} else {
		words, err = s.wordRepo.SampleRandomByCategory(ctx, category, count)
	}
	if err != nil {
		log.Error("failed to sample words",
			slog.String("error", err.Error()),
			slog.String("category", category))
		return nil, NewGenerateError("failed to sample words", err)
	}
	if len(words) < count {
		log.Warn("word pool too small for request",
			slog.String("category", category),
			slog.Int("requested", count),
			slog.Int("available", len(words)))
		return nil, ErrInsufficientWords
	}

	questions := make([]domain.QuizQuestion, 0, count)
	for _, w := range words {
		// Within a specific category the distractors share that
		// category. For an all-category quiz each word pulls its
		// distractors from its own category so the options stay
		// plausible.
		distractorCategory := category
		if allCategories {
			distractorCategory = w.Category
		}

		q, err := s.buildQuestion(ctx, w, direction, distractorCategory)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}

	return s.finishPaper(ctx, log, userID, category, direction, questions)
}

// GenerateFromNotes implements QuizGenerationService.GenerateFromNotes.
func (s *quizGenerationServiceImpl) GenerateFromNotes(
	ctx context.Context,
	userID uuid.UUID,
	req NotesGenerateRequest,
) (*domain.QuizView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	count := req.Count
	if count <= 0 {
		count = s.cfg.DefaultCount
	}
	direction := req.Direction
	if direction == "" {
		direction = domain.DirectionForward
	}
	category, allCategories := normalizeCategory(req.Category)

	filter := store.NoteFilter{
		Sort: store.NoteSortLastWrong,
		Page: 0,
		Size: notesPoolCap,
	}
	if !allCategories {
		filter.Category = category
	}
	filter.From, filter.To = parseDateBounds(req.From, req.To)

	notes, _, err := s.noteRepo.List(ctx, userID, filter)
	if err != nil {
		log.Error("failed to load review notes",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewGenerateError("failed to load review notes", err)
	}
	if len(notes) == 0 {
		log.Debug("no review notes match filters",
			slog.String("user_id", userID.String()),
			slog.String("category", category))
		return nil, ErrNoMatchingNotes
	}

	rand.Shuffle(len(notes), func(i, j int) {
		notes[i], notes[j] = notes[j], notes[i]
	})
	if count > len(notes) {
		count = len(notes)
	}

	questions := make([]domain.QuizQuestion, 0, count)
	for i := 0; i < count; i++ {
		n := &notes[i]
		w := &domain.Word{
			ID:       n.WordID,
			Term:     n.Term,
			Reading:  n.Reading,
			Meaning:  n.Meaning,
			Example:  n.Example,
			Category: n.Category,
		}

		q, err := s.buildQuestion(ctx, w, direction, w.Category)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}

	return s.finishPaper(ctx, log, userID, category, direction, questions)
}

// buildQuestion assembles one question for the word: three distinct
// distractors plus the correct text, shuffled, with the answer index
// recorded server side.
func (s *quizGenerationServiceImpl) buildQuestion(
	ctx context.Context,
	w *domain.Word,
	direction domain.Direction,
	distractorCategory string,
) (*domain.QuizQuestion, error) {
	correct := w.AnswerText(direction)

	candidates, err := s.wordRepo.SampleDistractors(
		ctx, direction, distractorCategory, w.ID, s.cfg.DistractorPool)
	if err != nil {
		return nil, NewGenerateError("failed to sample distractors", err)
	}

	// The store excludes the word itself, but another word can carry
	// the same answer text. Drop those before counting.
	distractors := candidates[:0]
	for _, c := range candidates {
		if c != correct {
			distractors = append(distractors, c)
		}
	}
	if len(distractors) < minDistractors {
		return nil, fmt.Errorf("word %q has %d distractors: %w",
			w.Term, len(distractors), ErrInsufficientDistractors)
	}

	rand.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})

	var options [domain.OptionCount]string
	copy(options[:minDistractors], distractors[:minDistractors])
	options[minDistractors] = correct
	rand.Shuffle(domain.OptionCount, func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := -1
	for i, opt := range options {
		if opt == correct {
			correctIndex = i
			break
		}
	}

	q := &domain.QuizQuestion{
		WordID:       w.ID,
		Prompt:       w.PromptText(direction),
		Options:      options,
		CorrectIndex: correctIndex,
		Example:      w.Example,
	}
	if err := q.Validate(); err != nil {
		return nil, NewGenerateError("generated question is invalid", err)
	}
	return q, nil
}

// finishPaper wraps the questions into a cached paper and returns the
// redacted client view.
func (s *quizGenerationServiceImpl) finishPaper(
	ctx context.Context,
	log *slog.Logger,
	userID uuid.UUID,
	category string,
	direction domain.Direction,
	questions []domain.QuizQuestion,
) (*domain.QuizView, error) {
	paper := &domain.QuizPaper{
		SessionID: uuid.NewString(),
		Category:  category,
		Direction: direction,
		Questions: questions,
	}
	if err := paper.Validate(); err != nil {
		return nil, NewGenerateError("generated paper is invalid", err)
	}

	s.papers.Put(paper.SessionID, paper)

	if s.audit != nil {
		if err := s.audit.CreateQuestions(ctx, userID, direction, questions); err != nil {
			log.Error("failed to record generated questions",
				slog.String("error", err.Error()),
				slog.String("session_id", paper.SessionID))
			s.papers.Evict(paper.SessionID)
			return nil, NewGenerateError("failed to record generated questions", err)
		}
	}

	log.Info("quiz generated",
		slog.String("user_id", userID.String()),
		slog.String("session_id", paper.SessionID),
		slog.String("category", category),
		slog.String("direction", string(direction)),
		slog.Int("questions", len(questions)))

	view := paper.View()
	return &view, nil
}

// normalizeCategory trims the category and reports whether it means
// the whole corpus.
func normalizeCategory(category string) (string, bool) {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, "all") {
		return "all", true
	}
	return category, false
}

// parseDateBounds converts optional YYYY-MM-DD strings into an
// inclusive-from, exclusive-to timestamp range. Unparseable values are
// ignored.
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
