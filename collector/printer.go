package collector

// 控制台输出模式：不建表也不连接数据库，逐行打印线索记录以便检查

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// 字段中的控制字符转义后输出，保证一条记录只占一行且字段数不变
var fieldEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`)

type Printer struct {
	w io.Writer
}

// 创建一个输出到w的Printer，w为nil时输出到标准输出
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

func (p *Printer) Begin() error { return nil }

/*
输入一个或多个线索记录，输出一个error

每条记录输出一行，字段以制表符分隔，依次为比赛ID、播出日期、轮次、类别、分值、题面、答案，没有分值的记录以"-"占位，字段内的制表符和换行以\t、\n形式输出
*/
func (p *Printer) Save(records ...Record) error {
	for _, r := range records {
		c := r.Info()
		value := "-"
		if v, ok := r.Value(); ok {
			value = strconv.Itoa(v)
		}
		if _, err := fmt.Fprintf(p.w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
			c.Game.ID, fieldEscaper.Replace(c.Game.Airdate), c.Round, fieldEscaper.Replace(c.Category), value,
			fieldEscaper.Replace(c.Text), fieldEscaper.Replace(c.Answer)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) Commit() error { return nil }

func (p *Printer) Rollback() error { return nil }
