package jarchive

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/jarchive/collector"
	"go.uber.org/multierr"
)

// 各轮次容器在页面中的标记
var roundMarkers = map[collector.Round]string{
	collector.FirstRound:  "#jeopardy_round",
	collector.SecondRound: "#double_jeopardy_round",
	collector.FinalRound:  "table.final_round",
}

/*
输入页面文档、常规轮次和所属比赛，输出线索记录、该轮是否存在以及一个error

轮次容器不存在时返回false且不报错（存档可能被截断）。容器存在时先读出全部类别，再按顺序遍历线索格：
空线索格（答错的每日双倍、比赛提前结束等）不产生记录，但仍占用类别循环中的一个位置。
返回的error聚合了本轮所有单条线索的问题，出现问题的线索被跳过，其余线索照常返回
*/
func ExtractRound(doc *goquery.Document, round collector.Round, game collector.Game) ([]collector.Record, bool, error) {
	if !round.Regular() {
		return nil, false, fmt.Errorf("%s is not a regular round", round)
	}
	r := doc.Find(roundMarkers[round]).First()
	if r.Length() == 0 {
		return nil, false, nil
	}

	var categories []string
	r.Find("td.category_name").Each(func(_ int, s *goquery.Selection) {
		categories = append(categories, strings.TrimSpace(s.Text()))
	})
	cells := r.Find("td.clue")

	var errs error
	if len(categories) == 0 || cells.Length() == 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: %s has %d categories and %d clue cells",
			ErrMalformedRound, round, len(categories), cells.Length()))
	}

	records := make([]collector.Record, 0, cells.Length())
	cells.Each(func(i int, cell *goquery.Selection) {
		if strings.TrimSpace(cell.Text()) == "" {
			return
		}
		record, err := extractClue(cell, i, categories, round, game)
		if err != nil {
			errs = multierr.Append(errs, &ClueError{Round: round, Index: i, Err: err})
			return
		}
		records = append(records, record)
	})
	return records, true, errs
}

// 解析一个非空的常规轮次线索格
func extractClue(cell *goquery.Selection, index int, categories []string, round collector.Round, game collector.Game) (collector.Record, error) {
	category, ok := ResolveCategory(index, categories)
	if !ok {
		return nil, fmt.Errorf("%w: position %d of %d categories", ErrMissingCategory, index%CategoryCount, len(categories))
	}
	value := cell.Find("td.clue_value, td.clue_value_daily_double").First().Text()
	text := cell.Find("td.clue_text").First().Text()
	answer, err := ExtractAnswer(cell, round)
	if err != nil {
		return nil, err
	}
	return collector.NewRegularClue(game, round, category, value, text, answer)
}

/*
输入页面文档和所属比赛，输出决赛轮线索、决赛轮是否存在以及一个error

决赛轮只有一个类别格、一个题面格和一个带答案的元素
*/
func ExtractFinalRound(doc *goquery.Document, game collector.Game) (collector.Record, bool, error) {
	r := doc.Find(roundMarkers[collector.FinalRound]).First()
	if r.Length() == 0 {
		return nil, false, nil
	}
	category := r.Find("td.category_name").First()
	if category.Length() == 0 {
		return nil, true, &ClueError{Round: collector.FinalRound, Err: fmt.Errorf("%w: no category", ErrMalformedRound)}
	}
	text := r.Find("td.clue_text").First().Text()
	answer, err := ExtractAnswer(r, collector.FinalRound)
	if err != nil {
		return nil, true, &ClueError{Round: collector.FinalRound, Err: err}
	}
	return collector.NewFinalClue(game, strings.TrimSpace(category.Text()), text, answer), true, nil
}
