// 包 output：输出路径推导与记录写出
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"region-names/internal/region"
)

// ErrNoInput：目标为目录但无法从输入路径得到文件名
var ErrNoInput = errors.New("input path has no file name")

// Target：解析后的输出位置
type Target struct {
	Dir  string
	File string
}

// 文档注释：推导输出目录与文件
// 背景：dest 为空时视为当前目录；dest 为已存在目录时文件名为 "_" + 输入文件名；
// 否则 dest 即文件路径，其父目录作为输出目录。
// 约束：只做推导不落盘，目录创建在 Write 前由 Prepare 完成。
func Resolve(dest, input string) (Target, error) {
	if dest == "" {
		dest = "./"
	}
	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		base := filepath.Base(input)
		if input == "" || base == "." || base == string(filepath.Separator) {
			return Target{}, ErrNoInput
		}
		return Target{Dir: dest, File: filepath.Join(dest, "_"+base)}, nil
	}
	return Target{Dir: filepath.Dir(dest), File: dest}, nil
}

// Prepare：输出目录不存在时递归创建
func (t Target) Prepare() error {
	if _, err := os.Stat(t.Dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", t.Dir, err)
	}
	return nil
}

// WriteRecords：每行 "<code>,<name>\n"，名称中的逗号不转义
func WriteRecords(w io.Writer, recs []region.Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range recs {
		if _, err := bw.WriteString(r.Code + "," + r.Name + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// 文档注释：覆盖写出到目标文件
// 异常：创建或写入失败直接返回；失败时可能残留部分内容，不做原子替换。
func (t Target) Write(recs []region.Record) error {
	if err := t.Prepare(); err != nil {
		return err
	}
	f, err := os.Create(t.File)
	if err != nil {
		return fmt.Errorf("create output file %s: %w", t.File, err)
	}
	if err := WriteRecords(f, recs); err != nil {
		_ = f.Close()
		return fmt.Errorf("write output file %s: %w", t.File, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file %s: %w", t.File, err)
	}
	return nil
}
