package factory

import (
	"time"

	"github.com/nkarpov/balda-go/internal/dependencies/mocks"
	"github.com/nkarpov/balda-go/internal/services/auth"
	"github.com/nkarpov/balda-go/internal/storage/memory"
	"github.com/nkarpov/balda-go/internal/testutil"
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
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small Russian dictionary for testing
func (t *TestApp) LoadTestDictionary() {
	words := []string{
		// 3-letter words
		"БАЛ", "БОР", "ВАЛ", "ВОЛ", "ГОД", "ДОМ", "ДАР", "КОЛ", "КОТ", "КОМ",
		"ЛАД", "ЛЕС", "ЛОБ", "МИР", "НОС", "ПАР", "ПОЛ", "РАК", "РОТ", "СОК",
		"СОН", "СТО", "ТОК", "ТОН", "ХОД", "ШАР",
		// 4-letter words
		"БОРТ", "ВОДА", "ГОРА", "ДОЛГ", "ИГРА", "КРОТ", "ЛАПА", "МОРЕ",
		"НЕБО", "НОРА", "ОКНО", "ПОЛЕ", "РЕКА", "РОЗА", "РУКА", "СЛОН",
		"СТОЛ", "СТУЛ", "ТРОН", "УТРО", "ШКАФ",
		// 5-letter and longer words
		"БАЛДА", "БАРАН", "ВЕСНА", "ГОРОД", "ДОСКА", "КАРТА", "КОРКА",
		"ЛАМПА", "МОЛОКО", "ПАРТА", "СЛОВО", "ТОЧКА", "ШКОЛА",
	}
	t.DictionaryService.LoadWords(words)
}
