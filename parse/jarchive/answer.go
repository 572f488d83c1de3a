package jarchive

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/jarchive/collector"
)

const (
	handlerAttr     = "onmouseover"
	correctResponse = "em.correct_response"
)

/*
输入一个线索格和轮次，输出正确答案和一个error

正确答案只存在于鼠标悬停事件的属性值里，属性值本身是一段转义过的HTML，需要再解析一次后取出强调元素的文本。
常规轮次要求强调元素带有correct_response类以区分片段中的其他强调文本，决赛轮次允许缺少该类
*/
func ExtractAnswer(cell *goquery.Selection, round collector.Round) (string, error) {
	handler, ok := cell.Find("[" + handlerAttr + "]").First().Attr(handlerAttr)
	if !ok {
		return "", fmt.Errorf("%w: no %s handler", ErrUnparseableClue, handlerAttr)
	}
	fragment, err := ParseFragment(handler)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnparseableClue, err)
	}
	em := fragment.Find(correctResponse).First()
	if em.Length() == 0 && round == collector.FinalRound {
		em = fragment.Find("em").First()
	}
	if em.Length() == 0 {
		return "", fmt.Errorf("%w: no correct response in %s handler", ErrUnparseableClue, handlerAttr)
	}
	return em.Text(), nil
}
