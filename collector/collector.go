package collector

// 定义了从题目页面中抽取出的线索记录以及存储引擎的统一规范

import "strconv"

// 轮次编号，常规轮次的编号同时参与分值计算
type Round int

const (
	FirstRound  Round = 1 // 第一轮
	SecondRound Round = 2 // 第二轮，同面值分数翻倍
	FinalRound  Round = 3 // 决赛轮，只有一个类别且没有预设分值
)

func (r Round) String() string {
	switch r {
	case FirstRound:
		return "jeopardy"
	case SecondRound:
		return "double_jeopardy"
	case FinalRound:
		return "final_jeopardy"
	default:
		return "round(" + strconv.Itoa(int(r)) + ")"
	}
}

// 判断是否为有类别循环与分值的常规轮次
func (r Round) Regular() bool {
	return r == FirstRound || r == SecondRound
}

// 一场比赛，ID按处理顺序分配，从1开始
type Game struct {
	ID      int
	Airdate string
}

// 所有线索共有的字段
type Clue struct {
	Game     Game
	Round    Round
	Category string
	Text     string // 题面
	Answer   string // 已经过反转义处理的答案
}

// 线索记录，常规轮次与决赛轮次的记录都实现该接口，供存储引擎消费
type Record interface {
	Info() Clue
	// 第二个返回值为false表示该线索没有预设分值，区别于分值为0
	Value() (int, bool)
}

// 常规轮次的线索，带有分值
type RegularClue struct {
	Clue
	Amount int
}

func (c RegularClue) Info() Clue { return c.Clue }

func (c RegularClue) Value() (int, bool) { return c.Amount, true }

// 决赛轮次的线索，没有分值字段
type FinalClue struct {
	Clue
}

func (c FinalClue) Info() Clue { return c.Clue }

func (FinalClue) Value() (int, bool) { return 0, false }

// 存储引擎的统一规范，一次批处理对应一个事务
type Storage interface {
	Begin() error
	Save(records ...Record) error
	Commit() error
	Rollback() error
}
