package graph

import "math"

// Ratios 由聚合计数派生的比率指标
type Ratios struct {
	EngagementRate    float64
	ReachRatio        float64
	EngagementPerItem float64
}

// DeriveRatios 计算派生指标，保留两位小数。
// 新账号或空账号分母为 0 时一律返回 0，不报错
func DeriveRatios(followers int, totalReach int, totalEngagement int, itemCount int) Ratios {
	var r Ratios
	if followers > 0 {
		r.EngagementRate = round2(float64(totalEngagement) / float64(followers) * 100)
		r.ReachRatio = round2(float64(totalReach) / float64(followers))
	}
	if itemCount > 0 {
		r.EngagementPerItem = round2(float64(totalEngagement) / float64(itemCount))
	}
	return r
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
