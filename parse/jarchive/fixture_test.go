package jarchive

import (
	"fmt"
	"html"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// 测试用的线索格，nil表示空格
type cell struct {
	value  string
	text   string
	answer string
	bare   bool // 不输出onmouseover属性
}

func clueCell(c *cell) string {
	if c == nil {
		return `<td class="clue">  </td>`
	}
	handler := fmt.Sprintf(`toggle('clue_J_1_1', 'clue_J_1_1_stuck', '<em>Alex</em> <em class="correct_response">%s</em>')`, c.answer)
	div := `<div onmouseover="` + html.EscapeString(handler) + `">`
	if c.bare {
		div = `<div>`
	}
	return `<td class="clue"><table><tr><td class="clue_header">` + div +
		`<table><tr><td class="clue_value">` + c.value + `</td></tr></table></div></td></tr>` +
		`<tr><td class="clue_text">` + c.text + `</td></tr></table></td>`
}

func roundHTML(id string, categories []string, cells []*cell) string {
	var b strings.Builder
	b.WriteString(`<div id="` + id + `"><table class="round"><tr>`)
	for _, c := range categories {
		b.WriteString(`<td class="category"><table><tr><td class="category_name">` + c + `</td></tr></table></td>`)
	}
	b.WriteString(`</tr>`)
	for i, c := range cells {
		if i%CategoryCount == 0 {
			b.WriteString(`<tr>`)
		}
		b.WriteString(clueCell(c))
		if i%CategoryCount == CategoryCount-1 || i == len(cells)-1 {
			b.WriteString(`</tr>`)
		}
	}
	b.WriteString(`</table></div>`)
	return b.String()
}

func finalHTML(category, text, answer string, classed bool) string {
	em := `<em>`
	if classed {
		em = `<em class="correct_response">`
	}
	handler := fmt.Sprintf(`toggle('clue_FJ', 'clue_FJ_stuck', '<table><tr><td class="right">Ken</td></tr></table>%s%s</em>')`, em, answer)
	return `<table class="final_round"><tr><td class="category"><div onmouseover="` + html.EscapeString(handler) + `">` +
		`<table><tr><td class="category_name">` + category + `</td></tr></table></div></td></tr>` +
		`<tr><td class="clue_text">` + text + `</td></tr></table>`
}

func page(title string, parts ...string) string {
	return `<html><head><title>` + title + `</title></head><body>` + strings.Join(parts, "") + `</body></html>`
}

const testTitle = "J! Archive - Show #4596, aired 2004-09-16"

var sixCategories = []string{"A", "B", "C", "D", "E", "F"}

func mustDoc(t *testing.T, s string) *goquery.Document {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func fullRound(n int, value string) []*cell {
	cells := make([]*cell, n)
	for i := range cells {
		cells[i] = &cell{value: value, text: fmt.Sprintf("clue %d", i), answer: fmt.Sprintf("answer %d", i)}
	}
	return cells
}
