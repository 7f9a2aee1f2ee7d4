package repository

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

const sampleTable = `level,pos,jp_word,reading,meaning,example,example_kr
ｎ５,v,食べる,たべる,먹다,りんごを「食べる」。,사과를 먹다.
N5,verb,飲む,のむ,마시다,,
5,명사,本,ほん,책,,
N4,adv,とても,とても,매우,,
N3,n,,なし,없음,,
N3,n,空,,하늘,,
N3,n,海,うみ,  ,,
beginner,n,犬,いぬ,개,,
N5,n,本,ほん,책(중복),,
`

func TestReadWordPool(t *testing.T) {
	pool, err := ReadWordPool(strings.NewReader(sampleTable))
	require.NoError(t, err)

	stats := pool.Stats()
	assert.Equal(t, 9, stats.Rows)
	assert.Equal(t, 3, stats.Dropped)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 5, stats.Kept)
	assert.Equal(t, 5, pool.Len())

	w, err := pool.Get("食べる")
	require.NoError(t, err)
	assert.Equal(t, entities.LevelN5, w.Level)
	assert.Equal(t, entities.POSVerb, w.POS)
	assert.Equal(t, "りんごを「食べる」。", w.Example)
	assert.Equal(t, "사과를 먹다.", w.ExampleTranslation)

	book, err := pool.Get("本")
	require.NoError(t, err)
	assert.Equal(t, "책", book.Meaning)
	assert.Equal(t, entities.POSNoun, book.POS)

	dog, err := pool.Get("犬")
	require.NoError(t, err)
	assert.Equal(t, entities.LevelUnknown, dog.Level)

	_, err = pool.Get("猫")
	assert.ErrorIs(t, err, ErrWordNotFound)

	counts := pool.CountByLevel()
	assert.Equal(t, 3, counts[entities.LevelN5])
	assert.Equal(t, 1, counts[entities.LevelN4])
	assert.Equal(t, 1, counts[entities.LevelUnknown])
}

func TestReadWordPool_HeaderWithBOM(t *testing.T) {
	pool, err := ReadWordPool(strings.NewReader("\uFEFFlevel,pos,jp_word,reading,meaning\nN5,n,本,ほん,책\n"))
	require.NoError(t, err)

	w, err := pool.Get("本")
	require.NoError(t, err)
	assert.Equal(t, entities.LevelN5, w.Level)
}

func TestReadWordPool_MissingColumns(t *testing.T) {
	_, err := ReadWordPool(strings.NewReader("level,jp_word,meaning\nN5,本,책\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{colPOS, colReading}, schemaErr.Missing)

	_, err = ReadWordPool(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestLoadWordPool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o600))

	pool, err := LoadWordPool(path)
	require.NoError(t, err)
	assert.Equal(t, 5, pool.Len())

	_, err = LoadWordPool(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestWordPoolLookups(t *testing.T) {
	pool, err := ReadWordPool(strings.NewReader(sampleTable))
	require.NoError(t, err)

	n5 := pool.Filter(entities.FilterKey{Level: entities.LevelN5})
	assert.Len(t, n5, 3)

	verbs := pool.Filter(entities.FilterKey{Level: entities.LevelN5, Group: entities.GroupVerb})
	assert.Len(t, verbs, 2)

	nouns := pool.SamePOS(entities.POSNoun)
	assert.Len(t, nouns, 2)

	got := pool.ByIDs([]string{"飲む", "猫", "食べる", "飲む"})
	require.Len(t, got, 2)
	assert.Equal(t, "飲む", got[0].Surface)
	assert.Equal(t, "食べる", got[1].Surface)
}
