package region

import (
	"bufio"
	"fmt"
	"io"
	"region-names/internal/logger"
	"strings"
)

// InvalidLine：结构不合法（少于两个字段）的行
type InvalidLine struct {
	Position int
	Text     string
}

func (l InvalidLine) String() string {
	return fmt.Sprintf("invalid line at position %d: %s", l.Position, l.Text)
}

// ParseResult：解析阶段的产物与计数
type ParseResult struct {
	Regions   []Region
	LinesRead int
	Invalid   []InvalidLine
}

// Retained：保留下来的有效区划数
func (p ParseResult) Retained() int { return len(p.Regions) }

// 文档注释：逐行解析区划表
// 背景：每行 "<代码> <名称> [忽略...]"；空行跳过；少于两个字段记为无效行并继续；
// 代码非纯数字的行（例如表头）静默丢弃。
// 约束：Position 为物理行号（从 1 开始，空行同样计数）；行长度不设上限，尾部忽略字段再长也不影响解析。
// 异常：仅读取错误作为 error 返回，行级问题都不致命。
func Parse(r io.Reader) (ParseResult, error) {
	var res ParseResult
	rd := bufio.NewReaderSize(r, 64*1024)
	for {
		raw, err := readLine(rd)
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, err
		}
		res.LinesRead++
		res.parseLine(raw)
	}
	logger.L().Debug("parse_done", "read", res.LinesRead, "retained", res.Retained(), "invalid", len(res.Invalid))
	return res, nil
}

func (res *ParseResult) parseLine(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}
	parts := strings.FieldsFunc(line, isASCIISpace)
	if len(parts) < 2 {
		res.Invalid = append(res.Invalid, InvalidLine{Position: res.LinesRead, Text: raw})
		logger.L().Debug("parse_invalid_line", "line", res.LinesRead, "text", raw)
		return
	}
	code, name := parts[0], parts[1]
	if !isNumeric(code) {
		return
	}
	if len(code) < cityPrefixLen {
		logger.L().Warn("parse_short_code", "line", res.LinesRead, "code", code)
	}
	res.Regions = append(res.Regions, Region{Code: code, Name: name})
}

// readLine：读取一整行并去掉行尾 \n 或 \r\n；末行无换行符时同样返回；无更多内容时返回 io.EOF
func readLine(rd *bufio.Reader) (string, error) {
	s, err := rd.ReadString('\n')
	if err == io.EOF {
		if s == "" {
			return "", io.EOF
		}
		err = nil
	}
	if err != nil {
		return "", err
	}
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
