package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/kaganatalay/ciz.im/internal/dependencies/random"
	"github.com/kaganatalay/ciz.im/internal/model"
	"github.com/kaganatalay/ciz.im/internal/storage"
)

// ErrEmptyWordBank is returned when a word source contains no usable words.
// The process must not serve sessions in that state.
var ErrEmptyWordBank = errors.New("word bank source contains no words")

// Service is the word bank: an immutable collection of candidate words
// loaded once at startup, sampled uniformly per round
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger

	mu     sync.RWMutex
	words  []string
	loaded bool
}

// New creates a new word bank service
func New(storage storage.Storage, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		logger:  logger,
	}
}

// LoadFromFile loads the word bank from a file, one word per line.
// Blank lines are skipped and surrounding whitespace is trimmed.
// A missing or empty file is an error; callers treat it as fatal.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open word list: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read word list: %w", err)
	}

	if err := s.LoadWords(words); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	// Mirror to storage so a shared backend can warm-start from it
	if err := s.storage.SaveWords(ctx, words); err != nil {
		return err
	}

	s.logger.Info("word bank loaded",
		slog.String("path", path),
		slog.Int("word_count", len(words)),
	)
	return nil
}

// LoadFromStorage loads the word bank previously saved to storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetWords(ctx)
	if err != nil {
		return err
	}
	return s.LoadWords(words)
}

// LoadWords loads a slice of words directly (useful for testing)
func (s *Service) LoadWords(words []string) error {
	if len(words) == 0 {
		return ErrEmptyWordBank
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = make([]string, len(words))
	copy(s.words, words)
	s.loaded = true
	return nil
}

// PickRandom returns a uniformly random word. Repeats across rounds are
// permitted; there is no exhaustion tracking.
func (s *Service) PickRandom() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return "", model.ErrWordsNotLoaded
	}
	return s.words[s.random.Intn(len(s.words))], nil
}

// IsLoaded returns whether the word bank has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the bank
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Interface for dependency injection
type ServiceInterface interface {
	LoadFromFile(ctx context.Context, path string) error
	LoadFromStorage(ctx context.Context) error
	LoadWords(words []string) error
	PickRandom() (string, error)
	IsLoaded() bool
	WordCount() int
}

var _ ServiceInterface = (*Service)(nil)
