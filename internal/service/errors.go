package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrUserEmailExist      = errors.New("邮箱已注册")
	ErrPasswordIncorrect   = errors.New("邮箱或密码错误")
	ErrStateInvalid        = errors.New("state 无效或已过期")
	ErrAccountNotConnected = errors.New("账号未连接")
	ErrNoFacebookPage      = errors.New("名下没有可用的 Facebook 主页")
	ErrUpstreamRejected    = errors.New("平台接口调用失败")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrUserNotFound:        NotFound,
	ErrUserEmailExist:      BadRequest,
	ErrPasswordIncorrect:   Unauthorized,
	ErrStateInvalid:        BadRequest,
	ErrAccountNotConnected: NotFound,
	ErrNoFacebookPage:      BadRequest,
	ErrUpstreamRejected:    BadRequest,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
