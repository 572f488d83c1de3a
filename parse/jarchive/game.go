package jarchive

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/jarchive/collector"
	"go.uber.org/multierr"
)

// 一场比赛的解析结果
type GameResult struct {
	Game    collector.Game
	Records []collector.Record
	Missing []collector.Round // 页面中不存在的轮次
	// 所有单条线索的解析问题，使用multierr.Errors展开
	Problems error
}

/*
输入页面文档和比赛ID，输出比赛的解析结果和一个error

只有取不到播出日期时返回error；缺少某个轮次或个别线索无法解析都记录在结果中，不影响其余轮次
*/
func ParseGame(doc *goquery.Document, gameID int) (*GameResult, error) {
	airdate, err := Airdate(doc)
	if err != nil {
		return nil, err
	}
	res := &GameResult{
		Game: collector.Game{ID: gameID, Airdate: airdate},
	}

	for _, round := range []collector.Round{collector.FirstRound, collector.SecondRound} {
		records, ok, err := ExtractRound(doc, round, res.Game)
		if !ok {
			res.Missing = append(res.Missing, round)
		}
		res.Records = append(res.Records, records...)
		res.Problems = multierr.Append(res.Problems, err)
	}

	final, ok, err := ExtractFinalRound(doc, res.Game)
	if !ok {
		res.Missing = append(res.Missing, collector.FinalRound)
	}
	if final != nil {
		res.Records = append(res.Records, final)
	}
	res.Problems = multierr.Append(res.Problems, err)

	return res, nil
}
