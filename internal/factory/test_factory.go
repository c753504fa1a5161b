package factory

import (
	"time"

	"github.com/kaganatalay/ciz.im/internal/dependencies/mocks"
	"github.com/kaganatalay/ciz.im/internal/storage/memory"
	"github.com/kaganatalay/ciz.im/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestWords loads a small word bank for testing
func (t *TestApp) LoadTestWords() error {
	words := []string{
		"elma", "armut", "kiraz", "muz", "portakal",
		"zürafa", "aslan", "kedi", "köpek", "balık",
		"masa", "sandalye", "kalem", "kitap", "bilgisayar",
	}
	return t.WordsService.LoadWords(words)
}
