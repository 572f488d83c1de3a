package engine

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"testing"

	"github.com/dszqbsm/jarchive/collector"
	"github.com/dszqbsm/jarchive/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	records   []collector.Record
	began     int
	committed int
	rolled    int
	failAt    int // 第failAt次Save返回错误，0表示不失败
	saves     int
	commitErr error
}

func (m *memStorage) Begin() error { m.began++; return nil }

func (m *memStorage) Save(records ...collector.Record) error {
	m.saves++
	if m.failAt > 0 && m.saves == m.failAt {
		return errors.New("disk full")
	}
	m.records = append(m.records, records...)
	return nil
}

func (m *memStorage) Commit() error   { m.committed++; return m.commitErr }
func (m *memStorage) Rollback() error { m.rolled++; return nil }

func finalPage(airdate, answer string) string {
	handler := `toggle('clue_FJ', 'clue_FJ_stuck', '<em class="correct_response">` + answer + `</em>')`
	return `<html><head><title>J! Archive - aired ` + airdate + `</title></head><body>` +
		`<table class="final_round"><tr><td class="category"><div onmouseover="` + html.EscapeString(handler) + `">` +
		`<table><tr><td class="category_name">AUTHORS</td></tr></table></div></td></tr>` +
		`<tr><td class="clue_text">clue</td></tr></table></body></html>`
}

func writeGames(t *testing.T, pages ...string) []string {
	t.Helper()
	dir := t.TempDir()
	for i, p := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("%03d.html", i)), []byte(p), 0o644))
	}
	files, err := loader.New().List(dir)
	require.NoError(t, err)
	return files
}

func TestCrawler_Run(t *testing.T) {
	files := writeGames(t,
		finalPage("2004-09-16", `Mark\'s Twain`),
		`<html><body>no title</body></html>`,
		finalPage("2004-09-17", "Poe"),
	)
	storage := &memStorage{}
	e := NewEngine(WithLoader(loader.New()), WithStorage(storage), WithSeeds(files))

	stats, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, &Stats{Games: 2, Skipped: 1, Records: 2}, stats)
	assert.Equal(t, 1, storage.began)
	assert.Equal(t, 1, storage.committed)
	assert.Zero(t, storage.rolled)

	require.Len(t, storage.records, 2)
	first, second := storage.records[0].Info(), storage.records[1].Info()
	assert.Equal(t, collector.Game{ID: 1, Airdate: "2004-09-16"}, first.Game)
	assert.Equal(t, "Mark's Twain", first.Answer)
	// 跳过的页面仍占用一个比赛ID
	assert.Equal(t, collector.Game{ID: 3, Airdate: "2004-09-17"}, second.Game)
}

func TestCrawler_RunParallelKeepsOrder(t *testing.T) {
	pages := make([]string, 20)
	for i := range pages {
		pages[i] = finalPage(fmt.Sprintf("2004-10-%02d", i+1), fmt.Sprintf("answer %d", i))
	}
	storage := &memStorage{}
	e := NewEngine(
		WithLoader(loader.New()),
		WithStorage(storage),
		WithSeeds(writeGames(t, pages...)),
		WithWorkCount(4),
	)

	stats, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 20, stats.Games)
	require.Len(t, storage.records, 20)
	for i, r := range storage.records {
		assert.Equal(t, i+1, r.Info().Game.ID)
		assert.Equal(t, fmt.Sprintf("answer %d", i), r.Info().Answer)
	}
}

func TestCrawler_RunStorageFailure(t *testing.T) {
	pages := make([]string, 5)
	for i := range pages {
		pages[i] = finalPage("2004-09-16", "a")
	}
	storage := &memStorage{failAt: 2}
	e := NewEngine(
		WithLoader(loader.New()),
		WithStorage(storage),
		WithSeeds(writeGames(t, pages...)),
		WithWorkCount(2),
	)

	stats, err := e.Run()
	assert.Error(t, err)
	assert.Equal(t, 1, stats.Games)
	assert.Equal(t, 1, storage.rolled)
	assert.Zero(t, storage.committed)
}

func TestCrawler_RunNeedsDependencies(t *testing.T) {
	_, err := NewEngine().Run()
	assert.Error(t, err)
}

func TestCrawler_RunCommitFailure(t *testing.T) {
	files := writeGames(t, finalPage("2004-09-16", "Poe"))
	storage := &memStorage{commitErr: errors.New("database is locked")}
	e := NewEngine(WithLoader(loader.New()), WithStorage(storage), WithSeeds(files))

	_, err := e.Run()
	assert.ErrorContains(t, err, "commit batch")
	assert.Equal(t, 1, storage.committed)
	assert.Equal(t, 1, storage.rolled)

	storage = &memStorage{commitErr: errors.New("database is locked")}
	_, err = NewEngine(WithLoader(loader.New()), WithStorage(storage)).Run()
	assert.Error(t, err)
	assert.Equal(t, 1, storage.rolled, "an empty batch is rolled back too")
}
