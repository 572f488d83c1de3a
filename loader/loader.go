package loader

// 从本地存档目录读取比赛页面，检测编码并统一转换为utf-8后解析成文档

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/jarchive/parse/jarchive"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const DefaultPattern = "*.html"

type Loader struct {
	options
}

func New(opts ...Option) *Loader {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	return &Loader{options: options}
}

/*
输入一个目录，输出该目录下匹配的页面文件列表和一个error

文件按文件名排序以保证比赛ID在多次运行之间稳定，limit大于0时只返回前limit个文件
*/
func (l *Loader) List(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	files, err := filepath.Glob(filepath.Join(dir, l.pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	if l.limit > 0 && len(files) > l.limit {
		files = files[:l.limit]
	}
	return files, nil
}

// 读取并解析一个页面文件
func (l *Loader) Load(path string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := jarchive.ParseDocument(l.utf8Reader(f))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func (l *Loader) utf8Reader(r io.Reader) io.Reader {
	bodyReader := bufio.NewReader(r)
	e := l.determineEncoding(bodyReader)
	return transform.NewReader(bodyReader, e.NewDecoder())
}

// 依据前1024个字节中的BOM与meta声明判断编码，判断不出时按utf-8处理
func (l *Loader) determineEncoding(r *bufio.Reader) encoding.Encoding {
	bytes, err := r.Peek(1024)
	if len(bytes) == 0 {
		if err != nil && err != io.EOF {
			l.logger.Error("peek page failed", zap.Error(err))
		}
		return unicode.UTF8
	}
	e, name, _ := charset.DetermineEncoding(bytes, "text/html")
	l.logger.Debug("determine encoding", zap.String("charset", name))
	return e
}
