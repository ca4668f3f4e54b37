package dictionary

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/nkarpov/balda-go/internal/model"
	"github.com/nkarpov/balda-go/internal/storage"
)

// Service is the in-memory dictionary implementation. It keeps the word set
// and every word prefix for O(1) lookups, and caches the alphabet derived
// from the loaded words.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu       sync.RWMutex
	words    map[string]struct{}
	prefixes map[string]struct{}
	alphabet []rune // cached aggregate; nil until computed
	loaded   bool
}

// New creates a new dictionary Service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage:  store,
		logger:   logger.With(slog.String("component", "dictionary")),
		words:    make(map[string]struct{}),
		prefixes: make(map[string]struct{}),
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	s.loadWords(words)
	return nil
}

// LoadFromFile loads dictionary words from a file (one word per line) and
// saves them to storage for future use
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
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
		return err
	}

	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}

	s.loadWords(words)
	s.logger.Info("dictionary loaded", slog.String("path", path), slog.Int("words", len(words)))
	return nil
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) {
	s.loadWords(words)
}

func (s *Service) loadWords(words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	s.prefixes = make(map[string]struct{})
	for _, word := range words {
		normalized := Normalize(word)
		if normalized == "" {
			continue
		}
		s.words[normalized] = struct{}{}
		runes := []rune(normalized)
		for i := 1; i <= len(runes); i++ {
			s.prefixes[string(runes[:i])] = struct{}{}
		}
	}
	s.loaded = true
	// Reloading the backing word set invalidates derived aggregates
	s.alphabet = nil
}

// Exists reports whether the word is in the dictionary.
// Returns ErrDictionaryNotLoaded before any load; callers fail closed on it.
func (s *Service) Exists(ctx context.Context, word string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false, model.ErrDictionaryNotLoaded
	}
	_, ok := s.words[Normalize(word)]
	return ok, nil
}

// HasPrefix reports whether any dictionary word starts with prefix
func (s *Service) HasPrefix(ctx context.Context, prefix string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false, model.ErrDictionaryNotLoaded
	}
	_, ok := s.prefixes[Normalize(prefix)]
	return ok, nil
}

// Alphabet returns the sorted set of letters occurring across the loaded
// words. The result is memoized until the next load; InvalidateAlphabet
// drops the cache explicitly.
func (s *Service) Alphabet() []rune {
	s.mu.RLock()
	if s.alphabet != nil {
		cached := make([]rune, len(s.alphabet))
		copy(cached, s.alphabet)
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.alphabet == nil {
		seen := make(map[rune]struct{})
		for word := range s.words {
			for _, r := range word {
				seen[r] = struct{}{}
			}
		}
		alphabet := make([]rune, 0, len(seen))
		for r := range seen {
			alphabet = append(alphabet, r)
		}
		sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })
		s.alphabet = alphabet
	}

	result := make([]rune, len(s.alphabet))
	copy(result, s.alphabet)
	return result
}

// InvalidateAlphabet drops the cached alphabet so the next Alphabet call
// recomputes it from the current word set
func (s *Service) InvalidateAlphabet() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alphabet = nil
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Interface checks
var (
	_ Lookup           = (*Service)(nil)
	_ PrefixLookup     = (*Service)(nil)
	_ AlphabetProvider = (*Service)(nil)
)
