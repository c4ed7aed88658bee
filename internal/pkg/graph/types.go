package graph

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// insightsResponse Graph API insights 通用返回结构
type insightsResponse struct {
	Data []struct {
		Name   string `json:"name"`
		Values []struct {
			Value int `json:"value"`
		} `json:"values"`
	} `json:"data"`
}

func (r *insightsResponse) metricValue(name string) int {
	for _, m := range r.Data {
		if m.Name == name && len(m.Values) > 0 {
			return m.Values[0].Value
		}
	}
	return 0
}

type edgeSummary struct {
	Summary struct {
		TotalCount int `json:"total_count"`
	} `json:"summary"`
}

// restClient 两个平台客户端共用的请求封装
type restClient struct {
	http     *resty.Client
	platform Platform
}

func (c *restClient) get(ctx context.Context, kind ErrorKind, op string, url string, params map[string]string, out any) error {
	resp, err := c.http.R().SetContext(ctx).SetQueryParams(params).Get(url)
	if err != nil {
		return upstreamErr(c.platform, kind, op, nil, err)
	}
	if resp.IsError() {
		return upstreamErr(c.platform, kind, op, resp, nil)
	}
	if out != nil {
		if err = json.Unmarshal(resp.Body(), out); err != nil {
			return upstreamErr(c.platform, kind, op, resp, err)
		}
	}
	return nil
}

func expiryAfterSeconds(seconds int64) *time.Time {
	t := time.Now().Add(time.Duration(seconds) * time.Second)
	return &t
}
