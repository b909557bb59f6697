package region

// ProgressFunc：每处理一条区划后的回调，pos 从 1 开始
type ProgressFunc func(pos int, rec Record)

// Composer：按层级拼接全称
type Composer struct {
	Delimiter string
	Resolver  Resolver
	Progress  ProgressFunc
}

// 文档注释：拼接单条区划全称
// 背景：省级保持原名；市级为 省<d>本级；叶子为 省<d>市<d>本级。
// 约束：祖先缺失时对应段为空字符串，分隔符照常保留。
func (c *Composer) ComposeOne(r Region) Record {
	d := c.Delimiter
	switch r.Level() {
	case Province:
		return Record{Code: r.Code, Name: r.Name}
	case City:
		p, _ := c.Resolver.ProvinceName(r.Code)
		return Record{Code: r.Code, Name: p + d + r.Name}
	}
	p, _ := c.Resolver.ProvinceName(r.Code)
	ct, _ := c.Resolver.CityName(r.Code)
	return Record{Code: r.Code, Name: p + d + ct + d + r.Name}
}

// Compose：按输入顺序为每条区划生成输出记录
func (c *Composer) Compose(regions []Region) []Record {
	out := make([]Record, 0, len(regions))
	for i, r := range regions {
		rec := c.ComposeOne(r)
		if c.Progress != nil {
			c.Progress(i+1, rec)
		}
		out = append(out, rec)
	}
	return out
}

// Expand：使用索引与给定分隔符拼接全部区划的便捷入口
func Expand(regions []Region, delimiter string) []Record {
	c := &Composer{Delimiter: delimiter, Resolver: NewIndex(regions)}
	return c.Compose(regions)
}
