package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

var (
	ErrMissingColumns = errors.New("word table is missing required columns")
	ErrWordNotFound   = errors.New("word not found")
)

// SchemaError reports the required columns absent from a word table header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrMissingColumns
}

const (
	colLevel           = "level"
	colPOS             = "pos"
	colSurface         = "surface"
	colReading         = "reading"
	colMeaning         = "meaning"
	colExample         = "example"
	colTranslation     = "example_translation"
	colKanjiCandidate  = "kanji_candidate"
	colKanjiConfidence = "kanji_confidence"
	colDisplayKanji    = "display_kanji"
)

var requiredColumns = []string{colLevel, colPOS, colSurface, colReading, colMeaning}

// headerAliases maps header spellings found in word tables to column names.
var headerAliases = map[string]string{
	"level":               colLevel,
	"jlpt":                colLevel,
	"pos":                 colPOS,
	"jp_word":             colSurface,
	"surface":             colSurface,
	"surface_form":        colSurface,
	"word":                colSurface,
	"reading":             colReading,
	"kana":                colReading,
	"meaning":             colMeaning,
	"meaning_kr":          colMeaning,
	"example":             colExample,
	"example_sentence":    colExample,
	"example_jp":          colExample,
	"example_kr":          colTranslation,
	"example_ko":          colTranslation,
	"example_translation": colTranslation,
	"kanji_candidate":     colKanjiCandidate,
	"kanji_confidence":    colKanjiConfidence,
	"confidence":          colKanjiConfidence,
	"display_kanji":       colDisplayKanji,
	"display_kanji_flag":  colDisplayKanji,
}

// LoadStats counts what happened to the rows of a word table.
type LoadStats struct {
	Rows       int // data rows read
	Kept       int // rows in the pool
	Dropped    int // rows missing surface, reading or meaning
	Duplicates int // rows whose surface form was already loaded
}

// WordPool is the read-only set of words a quiz is drawn from.
// Lookups return fresh slices; the pool itself never changes after construction.
type WordPool struct {
	words []entities.Word
	byID  map[string]int
	byPOS map[entities.POS][]int
	stats LoadStats
}

// LoadWordPool reads the word table at path.
func LoadWordPool(path string) (*WordPool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word table: %w", err)
	}
	defer f.Close()

	pool, err := ReadWordPool(f)
	if err != nil {
		return nil, fmt.Errorf("load word table %s: %w", path, err)
	}

	return pool, nil
}

// ReadWordPool parses a CSV word table. A header without the required columns
// yields a *SchemaError and no pool.
func ReadWordPool(r io.Reader) (*WordPool, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Missing: requiredColumns}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := indexHeader(header)
	missing := lo.Filter(requiredColumns, func(col string, _ int) bool {
		_, ok := index[col]
		return !ok
	})
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	var (
		words []entities.Word
		stats LoadStats
	)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		w, err := entities.NewWord(rowInput(record, index))
		if err != nil {
			stats.Dropped++
			continue
		}
		words = append(words, w)
	}

	pool := NewWordPool(words)
	pool.stats.Rows = stats.Rows
	pool.stats.Dropped = stats.Dropped

	return pool, nil
}

// NewWordPool indexes words. Later words with an already-seen surface form are skipped.
func NewWordPool(words []entities.Word) *WordPool {
	p := &WordPool{
		byID:  make(map[string]int, len(words)),
		byPOS: make(map[entities.POS][]int),
	}

	for _, w := range words {
		if _, dup := p.byID[w.ID()]; dup {
			p.stats.Duplicates++
			continue
		}
		i := len(p.words)
		p.words = append(p.words, w)
		p.byID[w.ID()] = i
		p.byPOS[w.POS] = append(p.byPOS[w.POS], i)
	}

	p.stats.Kept = len(p.words)
	p.stats.Rows = len(words)

	return p
}

// Stats returns the load counters.
func (p *WordPool) Stats() LoadStats {
	return p.stats
}

// Len returns the number of words.
func (p *WordPool) Len() int {
	return len(p.words)
}

// Get returns the word with the given identifier.
func (p *WordPool) Get(id string) (entities.Word, error) {
	i, ok := p.byID[id]
	if !ok {
		return entities.Word{}, ErrWordNotFound
	}
	return p.words[i], nil
}

// Filter returns the words matching f in load order.
func (p *WordPool) Filter(f entities.FilterKey) []entities.Word {
	return lo.Filter(p.words, func(w entities.Word, _ int) bool {
		return f.Matches(w)
	})
}

// SamePOS returns every word tagged pos, across all levels.
func (p *WordPool) SamePOS(pos entities.POS) []entities.Word {
	return lo.Map(p.byPOS[pos], func(i int, _ int) entities.Word {
		return p.words[i]
	})
}

// ByIDs returns the known words among ids, in request order and without repeats.
func (p *WordPool) ByIDs(ids []string) []entities.Word {
	return lo.FilterMap(lo.Uniq(ids), func(id string, _ int) (entities.Word, bool) {
		i, ok := p.byID[id]
		if !ok {
			return entities.Word{}, false
		}
		return p.words[i], true
	})
}

// CountByLevel returns the number of words per tier. Unclassified words count under LevelUnknown.
func (p *WordPool) CountByLevel() map[entities.Level]int {
	counts := make(map[entities.Level]int)
	for _, w := range p.words {
		counts[w.Level]++
	}
	return counts
}

func indexHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
		col, ok := headerAliases[key]
		if !ok {
			continue
		}
		if _, taken := index[col]; !taken {
			index[col] = i
		}
	}
	return index
}

func rowInput(record []string, index map[string]int) entities.WordInput {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	confidence, err := strconv.ParseFloat(strings.TrimSpace(get(colKanjiConfidence)), 64)
	if err != nil {
		confidence = 0
	}

	return entities.WordInput{
		Level:              get(colLevel),
		POS:                get(colPOS),
		Surface:            get(colSurface),
		Reading:            get(colReading),
		Meaning:            get(colMeaning),
		Example:            get(colExample),
		ExampleTranslation: get(colTranslation),
		KanjiCandidate:     get(colKanjiCandidate),
		KanjiConfidence:    confidence,
		DisplayKanji:       parseFlag(get(colDisplayKanji)),
	}
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "y", "yes":
		return true
	default:
		return false
	}
}
