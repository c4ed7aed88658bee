package graph

// Totals 平台无关的聚合计数
type Totals struct {
	Likes      int
	Comments   int
	Shares     int
	Reach      int
	Engagement int
	ItemCount  int
}

// Aggregate 把逐条原始计数折叠成一份快照总量。纯求和，无任何 IO，
// 缺失字段在上游已按 0 填充
func Aggregate(items []RawItem) Totals {
	t := Totals{ItemCount: len(items)}
	for _, item := range items {
		t.Likes += item.Likes
		t.Comments += item.Comments
		t.Shares += item.Shares
		t.Reach += item.Reach
	}
	t.Engagement = t.Likes + t.Comments + t.Shares
	return t
}
