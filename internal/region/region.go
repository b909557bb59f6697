// 包 region：行政区划表的解析、层级推断与全称拼接
package region

import "strings"

const (
	provinceSuffix = "0000"
	citySuffix     = "00"

	provincePrefixLen = 2
	cityPrefixLen     = 4
)

// Region：区划表中的一行，Code 为纯数字区划代码，Name 为本级简称
type Region struct {
	Code string
	Name string
}

// Record：输出投影，Name 为拼接后的全称
type Record struct {
	Code string
	Name string
}

// Level：由代码尾部零模式推断的层级
type Level int

const (
	Leaf Level = iota
	City
	Province
)

func (l Level) String() string {
	switch l {
	case Province:
		return "province"
	case City:
		return "city"
	}
	return "leaf"
}

// LevelOf：尾部 0000 为省级，尾部 00 为市级，其余为县级（叶子）
func LevelOf(code string) Level {
	if strings.HasSuffix(code, provinceSuffix) {
		return Province
	}
	if strings.HasSuffix(code, citySuffix) {
		return City
	}
	return Leaf
}

// Level：返回该区划的层级
func (r Region) Level() Level { return LevelOf(r.Code) }

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
