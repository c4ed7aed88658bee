package dto

import "time"

// AuthorizeURLDTO 平台授权页地址
type AuthorizeURLDTO struct {
	URL string `json:"url"`
}

// ConnectedAccountDTO 回调成功后返回的平台账号概要
type ConnectedAccountDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// MetricDTO 单日指标快照
type MetricDTO struct {
	SocialAccountID   uint64    `json:"socialAccountId"`
	Provider          string    `json:"provider"`
	MetricDate        time.Time `json:"metricDate"`
	Followers         int       `json:"followers"`
	MediaCount        int       `json:"mediaCount"`
	PostCount         int       `json:"postCount"`
	TotalLikes        int       `json:"totalLikes"`
	TotalComments     int       `json:"totalComments"`
	TotalShares       int       `json:"totalShares"`
	TotalReach        int       `json:"totalReach"`
	EngagementRate    float64   `json:"engagementRate"`
	ReachRatio        float64   `json:"reachRatio"`
	EngagementPerPost float64   `json:"engagementPerPost"`
}

// ScoreDTO 商家单日综合评分
type ScoreDTO struct {
	BusinessID     uint64    `json:"businessId"`
	ScoreDate      time.Time `json:"scoreDate"`
	InstagramScore float64   `json:"instagramScore"`
	FacebookScore  float64   `json:"facebookScore"`
	FinalScore     float64   `json:"finalScore"`
}
