// 包 store：区划全称的下游落库（PostgreSQL 字典表与 Redis 哈希）
package store

import (
	"region-names/internal/region"
)

// Entry：一条待同步的区划，Name 为简称，FullName 为拼接后的全称
type Entry struct {
	Code     string
	Name     string
	FullName string
	Level    region.Level
}

// Entries：按下标对齐原始区划与输出记录
// 约束：recs 必须由 regions 按顺序生成，长度一致
func Entries(regions []region.Region, recs []region.Record) []Entry {
	out := make([]Entry, 0, len(recs))
	for i, rec := range recs {
		out = append(out, Entry{
			Code:     rec.Code,
			Name:     regions[i].Name,
			FullName: rec.Name,
			Level:    regions[i].Level(),
		})
	}
	return out
}

// batches：把 n 条记录按 size 切成 [start,end) 区间
func batches(n, size int) [][2]int {
	if size <= 0 {
		size = n
	}
	var out [][2]int
	for s := 0; s < n; s += size {
		e := s + size
		if e > n {
			e = n
		}
		out = append(out, [2]int{s, e})
	}
	return out
}
