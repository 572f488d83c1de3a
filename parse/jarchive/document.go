package jarchive

// 解析J! Archive的比赛页面，抽取三个轮次的线索

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/jarchive/collector"
)

var (
	ErrNoAirdate       = errors.New("page title carries no airdate")
	ErrUnparseableClue = errors.New("unparseable clue")
	ErrMissingCategory = errors.New("no category for clue position")
	ErrMalformedRound  = errors.New("malformed round")
)

// 单条线索的解析问题，不会中断整场比赛的解析
type ClueError struct {
	Round collector.Round
	Index int // 线索格在本轮中的位置
	Err   error
}

func (e *ClueError) Error() string {
	return fmt.Sprintf("%s clue %d: %v", e.Round, e.Index, e.Err)
}

func (e *ClueError) Unwrap() error {
	return e.Err
}

// 把HTML解析成文档，页面与答案片段都使用该方法解析
func ParseDocument(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

// 将onmouseover属性中的转义HTML当作独立片段再解析一次
func ParseFragment(raw string) (*goquery.Document, error) {
	return ParseDocument(strings.NewReader(raw))
}

/*
输入一个页面文档，输出播出日期和一个error

标题形如"J! Archive - Show #4596, aired 2004-09-16"，取最后一个空白分隔的部分
*/
func Airdate(doc *goquery.Document) (string, error) {
	fields := strings.Fields(doc.Find("title").First().Text())
	if len(fields) == 0 {
		return "", ErrNoAirdate
	}
	return fields[len(fields)-1], nil
}
