package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
	"github.com/custodia-labs/smartstudy/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// Storage keys.
const (
	LibraryKeyPrefix = "smartstudy.library."
	CurrentKey       = "smartstudy.current"
)

// BookwormThreshold is the document count that earns the Bookworm badge.
const BookwormThreshold = 10

// PerfectScoreMinQuestions is the smallest quiz that can earn Perfect Score.
const PerfectScoreMinQuestions = 4

var (
	libraryName = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} _.-]{0,63}$`)
	ocrLangCode = regexp.MustCompile(`^[A-Za-z_]{2,}(\+[A-Za-z_]{2,})*$`)
)

// LibraryKey returns the storage key of the named library.
func LibraryKey(name string) string {
	return LibraryKeyPrefix + name
}

// LibraryService manages the current library and its named siblings.
type LibraryService struct {
	kv  driven.KeyValueStore
	now func() time.Time

	mu      sync.RWMutex
	current string
	store   *LibraryStore
}

// LibraryOption configures a LibraryService.
type LibraryOption func(*LibraryService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) LibraryOption {
	return func(s *LibraryService) {
		s.now = now
	}
}

// NewLibraryService opens the named library, or the one recorded as current
// when name is empty. Opening never fails on bad stored data.
func NewLibraryService(ctx context.Context, kv driven.KeyValueStore, name string, opts ...LibraryOption) (*LibraryService, error) {
	s := &LibraryService{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if name == "" {
		name = s.storedCurrent(ctx)
	}
	if err := validateLibraryName(name); err != nil {
		return nil, err
	}

	s.open(ctx, name)
	return s, nil
}

func (s *LibraryService) storedCurrent(ctx context.Context) string {
	data, err := s.kv.Get(ctx, CurrentKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("cannot read current library: %v", err)
		}
		return domain.DefaultLibraryName
	}
	name := strings.TrimSpace(string(data))
	if validateLibraryName(name) != nil {
		return domain.DefaultLibraryName
	}
	return name
}

func (s *LibraryService) open(ctx context.Context, name string) {
	store := NewLibraryStore(s.kv, LibraryKey(name))
	store.Restore(ctx)

	s.mu.Lock()
	s.current = name
	s.store = store
	s.mu.Unlock()
}

func validateLibraryName(name string) error {
	if !libraryName.MatchString(name) {
		return fmt.Errorf("%w: library name %q", domain.ErrInvalidInput, name)
	}
	return nil
}

func (s *LibraryService) active() *LibraryStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Store returns the current library store.
func (s *LibraryService) Store() *LibraryStore {
	return s.active()
}

// Use switches to the named library and records it as current.
func (s *LibraryService) Use(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if err := validateLibraryName(name); err != nil {
		return err
	}
	if err := s.kv.Put(ctx, CurrentKey, []byte(name)); err != nil {
		return fmt.Errorf("save current library: %w", err)
	}
	s.open(ctx, name)
	return nil
}

// Current returns the name of the current library.
func (s *LibraryService) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Names lists the stored libraries plus the current one, sorted.
func (s *LibraryService) Names(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx, LibraryKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}

	seen := map[string]bool{s.Current(): true}
	names := []string{s.Current()}
	for _, k := range keys {
		name := strings.TrimPrefix(k, LibraryKeyPrefix)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Add appends documents in order, awards upload badges and persists once.
func (s *LibraryService) Add(ctx context.Context, docs ...domain.Document) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	var awarded []string
	err := s.active().Update(ctx, func(lib *domain.Library) error {
		appendDocuments(lib, docs)
		awarded = nil
		if len(lib.Documents) >= 1 && award(&lib.User, domain.BadgeFirstUpload) {
			awarded = append(awarded, domain.BadgeFirstUpload)
		}
		if len(lib.Documents) >= BookwormThreshold && award(&lib.User, domain.BadgeBookworm) {
			awarded = append(awarded, domain.BadgeBookworm)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return awarded, nil
}

// List returns all documents in insertion order.
func (s *LibraryService) List(_ context.Context) ([]domain.Document, error) {
	return s.active().Documents(), nil
}

// Get retrieves a document by ID.
func (s *LibraryService) Get(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := s.active().Get(id)
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return &doc, nil
}

// Remove deletes a document. Unknown IDs are a no-op.
func (s *LibraryService) Remove(ctx context.Context, id string) error {
	return s.active().Remove(ctx, id)
}

// Clear removes every document.
func (s *LibraryService) Clear(ctx context.Context) error {
	return s.active().Clear(ctx)
}

// AllText returns every document's text joined by newlines.
func (s *LibraryService) AllText(_ context.Context) (string, error) {
	return s.active().AllText(), nil
}

// Library returns a copy of the current library.
func (s *LibraryService) Library(_ context.Context) (domain.Library, error) {
	return s.active().Library(), nil
}

// Replace swaps the current library's contents and persists them.
func (s *LibraryService) Replace(ctx context.Context, lib domain.Library) error {
	return s.active().Replace(ctx, lib)
}

// Subjects counts documents per subject and per subject/chapter pair.
func (s *LibraryService) Subjects(_ context.Context) (*driving.SubjectIndex, error) {
	subjects := make(map[string]int)
	chapters := make(map[string]int)
	for _, d := range s.active().Documents() {
		subjects[d.Subject]++
		chapters[d.Subject+" • "+d.Chapter]++
	}
	return &driving.SubjectIndex{
		Subjects: sortedCounts(subjects),
		Chapters: sortedCounts(chapters),
	}, nil
}

func sortedCounts(m map[string]int) []driving.TagCount {
	out := make([]driving.TagCount, 0, len(m))
	for label, n := range m {
		out = append(out, driving.TagCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// Profile returns the learner's counters as of today. A stale TodayCount
// from an earlier day reads as zero, and a streak last extended before
// yesterday reads as broken.
func (s *LibraryService) Profile(_ context.Context) (domain.UserStats, error) {
	u := s.active().Library().User
	now := s.now()
	if u.LastActive != domain.Day(now) {
		u.TodayCount = 0
		if u.LastActive != domain.Day(now.AddDate(0, 0, -1)) {
			u.Streak = 0
		}
	}
	return u, nil
}

// SetName sets the learner's display name.
func (s *LibraryService) SetName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty name", domain.ErrInvalidInput)
	}
	return s.active().Update(ctx, func(lib *domain.Library) error {
		lib.User.Name = name
		return nil
	})
}

// SetDailyTarget sets the daily question target.
func (s *LibraryService) SetDailyTarget(ctx context.Context, target int) error {
	if target < 1 {
		return fmt.Errorf("%w: daily target must be at least 1", domain.ErrInvalidInput)
	}
	return s.active().Update(ctx, func(lib *domain.Library) error {
		lib.User.DailyTarget = target
		return nil
	})
}

// RecordQuiz adds the answered questions to today's count, advances the
// streak and awards quiz badges.
func (s *LibraryService) RecordQuiz(ctx context.Context, result domain.QuizResult) ([]string, error) {
	if result.Total < 0 || result.Correct < 0 || result.Correct > result.Total {
		return nil, fmt.Errorf("%w: quiz result %d/%d", domain.ErrInvalidInput, result.Correct, result.Total)
	}

	today := s.now()
	var awarded []string
	err := s.active().Update(ctx, func(lib *domain.Library) error {
		awarded = nil
		u := &lib.User
		touch(u, today)
		u.TodayCount += result.Total

		check := func(ok bool, badge string) {
			if ok && award(u, badge) {
				awarded = append(awarded, badge)
			}
		}
		check(result.Perfect() && result.Total >= PerfectScoreMinQuestions, domain.BadgePerfectScore)
		check(u.TodayCount >= u.DailyTarget, domain.BadgeTargetReached)
		check(u.Streak >= 3, domain.Badge3DayStreak)
		check(u.Streak >= 7, domain.Badge7DayStreak)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return awarded, nil
}

// touch marks today as active. A new day resets TodayCount; the streak
// continues from yesterday or restarts at 1.
func touch(u *domain.UserStats, now time.Time) {
	today := domain.Day(now)
	if u.LastActive == today {
		return
	}
	if u.LastActive == domain.Day(now.AddDate(0, 0, -1)) {
		u.Streak++
	} else {
		u.Streak = 1
	}
	u.TodayCount = 0
	u.LastActive = today
}

// award adds badge unless already held. Returns true if it was new.
func award(u *domain.UserStats, badge string) bool {
	if u.HasBadge(badge) {
		return false
	}
	u.Badges = append(u.Badges, badge)
	return true
}

// Settings returns the current settings.
func (s *LibraryService) Settings(_ context.Context) (domain.Settings, error) {
	return s.active().Library().Settings, nil
}

// SetOCRLang sets the OCR language code. Codes combine with "+" (e.g., "eng+hin").
func (s *LibraryService) SetOCRLang(ctx context.Context, lang string) error {
	lang = strings.TrimSpace(lang)
	if !ocrLangCode.MatchString(lang) {
		return fmt.Errorf("%w: ocr language %q", domain.ErrInvalidInput, lang)
	}
	return s.active().Update(ctx, func(lib *domain.Library) error {
		lib.Settings.OCRLang = lang
		return nil
	})
}

// SetVoiceEnabled toggles speech output.
func (s *LibraryService) SetVoiceEnabled(ctx context.Context, enabled bool) error {
	return s.active().Update(ctx, func(lib *domain.Library) error {
		lib.Settings.VoiceEnabled = enabled
		return nil
	})
}
