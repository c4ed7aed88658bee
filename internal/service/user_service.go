package service

import (
	"BizPulse/internal/api/dto"
	"BizPulse/internal/model"
	"BizPulse/internal/pkg/redis"
	"BizPulse/internal/pkg/security"
	"BizPulse/internal/repository"
	"context"
)

type UserService interface {
	Register(ctx context.Context, dto *dto.RegisterDTO) error
	Login(ctx context.Context, dto *dto.CredentialDTO) (string, error)
	Logout(ctx context.Context, token string) error
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	findUser, err := s.userRepo.GetUserByEmail(ctx, regDTO.Email)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserEmailExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Name:     regDTO.Name,
		Email:    regDTO.Email,
		Password: passwordHash,
	}
	return s.userRepo.CreateUser(ctx, user)
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, credDTO.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(credDTO.Password, user.Password); err != nil {
		return "", ErrPasswordIncorrect
	}
	return security.GenerateToken(user.ID)
}

// Logout 把 Token 签名写入黑名单，有效期与 Token 一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrParamInvalid
	}
	return redis.SetWithExpiration(ctx, signature, "revoked", security.JWTExpirationTime)
}
