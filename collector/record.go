package collector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadValue = errors.New("clue value is not a number")

// 页面把答案放在单引号包裹的JavaScript字符串中，引号会带上反斜杠
var answerReplacer = strings.NewReplacer(`\'`, `'`, `\"`, `"`)

// 去除答案中的转义引号
func NormalizeAnswer(answer string) string {
	return answerReplacer.Replace(answer)
}

/*
输入原始分值字符串和轮次，输出存储用的分值和一个error

原始分值形如"$400"或每日双倍的"DD: $1,000"，去掉前导标记和千分位后按 面值*100*轮次 计算，因此第二轮的增长比第一轮更陡
*/
func ClueValue(raw string, round Round) (int, error) {
	if !round.Regular() {
		return 0, fmt.Errorf("%s has no preset value", round)
	}
	s := strings.TrimLeft(strings.TrimSpace(raw), "D: $")
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadValue, raw)
	}
	return n * 100 * int(round), nil
}

// 构造一条常规轮次线索记录
func NewRegularClue(game Game, round Round, category, rawValue, text, answer string) (RegularClue, error) {
	value, err := ClueValue(rawValue, round)
	if err != nil {
		return RegularClue{}, err
	}
	return RegularClue{
		Clue: Clue{
			Game:     game,
			Round:    round,
			Category: category,
			Text:     text,
			Answer:   NormalizeAnswer(answer),
		},
		Amount: value,
	}, nil
}

// 构造一条决赛轮次线索记录
func NewFinalClue(game Game, category, text, answer string) FinalClue {
	return FinalClue{
		Clue: Clue{
			Game:     game,
			Round:    FinalRound,
			Category: category,
			Text:     text,
			Answer:   NormalizeAnswer(answer),
		},
	}
}
