package graph

import (
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

type ErrorKind string

const (
	// KindAuth 令牌交换或刷新失败
	KindAuth ErrorKind = "auth"
	// KindData 主页或内容列表拉取失败
	KindData ErrorKind = "data"
)

// ErrNoPage Facebook 用户名下没有任何可用 Page
var ErrNoPage = errors.New("facebook account has no pages")

// UpstreamError 上游调用失败，保留状态码和响应体用于排查
type UpstreamError struct {
	Platform   Platform
	Kind       ErrorKind
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %v", e.Platform, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s failed: status=%d body=%s", e.Platform, e.Op, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func IsAuthError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Kind == KindAuth
}

func IsDataError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Kind == KindData
}

func upstreamErr(platform Platform, kind ErrorKind, op string, resp *resty.Response, err error) *UpstreamError {
	ue := &UpstreamError{Platform: platform, Kind: kind, Op: op, Err: err}
	if resp != nil {
		ue.StatusCode = resp.StatusCode()
		ue.Body = string(resp.Body())
	}
	return ue
}
