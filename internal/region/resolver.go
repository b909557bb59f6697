package region

import "strings"

// 文档注释：线性扫描查找省级名称
// 背景：与 code 前 2 位相同、尾部为 0000、且不是自身的第一条记录即为所属省。
// 约束：code 短于 2 位时视为未找到。
func FindProvinceName(regions []Region, code string) (string, bool) {
	return findAncestor(regions, code, provincePrefixLen, provinceSuffix)
}

// 文档注释：线性扫描查找市级名称
// 背景：与 code 前 4 位相同、尾部为 00、且不是自身的第一条记录即为所属市。
// 注意：尾部 0000 的省级记录同样满足尾部 00，叶子代码如 110001 会把省名当作市名。
func FindCityName(regions []Region, code string) (string, bool) {
	return findAncestor(regions, code, cityPrefixLen, citySuffix)
}

func findAncestor(regions []Region, code string, prefixLen int, suffix string) (string, bool) {
	if len(code) < prefixLen {
		return "", false
	}
	prefix := code[:prefixLen]
	for _, r := range regions {
		if r.Code != code && strings.HasPrefix(r.Code, prefix) && strings.HasSuffix(r.Code, suffix) {
			return r.Name, true
		}
	}
	return "", false
}

// Resolver：祖先名称查询接口，线性扫描与索引两种实现结果一致
type Resolver interface {
	ProvinceName(code string) (string, bool)
	CityName(code string) (string, bool)
}

// Scan：直接在原始切片上线性扫描
type Scan []Region

func (s Scan) ProvinceName(code string) (string, bool) { return FindProvinceName(s, code) }
func (s Scan) CityName(code string) (string, bool)     { return FindCityName(s, code) }

// 文档注释：按前缀分桶的祖先索引
// 背景：线性扫描整体为 O(n²)；索引在构建时按输入顺序收集候选，查询时取第一条非自身候选，
// 保持"先出现者优先"的规则不变。
type Index struct {
	regions   []Region
	provinces map[string][]int
	cities    map[string][]int
}

// NewIndex：一次遍历构建省、市两级候选桶；regions 在索引生命周期内不得修改
func NewIndex(regions []Region) *Index {
	idx := &Index{
		regions:   regions,
		provinces: make(map[string][]int),
		cities:    make(map[string][]int),
	}
	for i, r := range regions {
		if strings.HasSuffix(r.Code, provinceSuffix) {
			p := r.Code[:provincePrefixLen]
			idx.provinces[p] = append(idx.provinces[p], i)
		}
		if len(r.Code) >= cityPrefixLen && strings.HasSuffix(r.Code, citySuffix) {
			p := r.Code[:cityPrefixLen]
			idx.cities[p] = append(idx.cities[p], i)
		}
	}
	return idx
}

func (x *Index) ProvinceName(code string) (string, bool) {
	return x.lookup(x.provinces, code, provincePrefixLen)
}

func (x *Index) CityName(code string) (string, bool) {
	return x.lookup(x.cities, code, cityPrefixLen)
}

func (x *Index) lookup(bucket map[string][]int, code string, prefixLen int) (string, bool) {
	if len(code) < prefixLen {
		return "", false
	}
	for _, i := range bucket[code[:prefixLen]] {
		if x.regions[i].Code != code {
			return x.regions[i].Name, true
		}
	}
	return "", false
}
