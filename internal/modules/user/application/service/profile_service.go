package service

import (
	"context"
	"errors"
	"strings"

	"FleetOps/internal/modules/user/application/dto/request"
	"FleetOps/internal/modules/user/application/dto/respond"
	"FleetOps/internal/modules/user/domain/repository"
	"FleetOps/pkg/util/myjwt"
	"FleetOps/pkg/xerr"
	"FleetOps/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProfileService interface {
	// Login 开发环境登录：按邮箱签发 token，生产由外部认证服务签发
	Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error)
}

type profileServiceImpl struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileServiceImpl{repo: repo}
}

func (s *profileServiceImpl) Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	p, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.Unauthorized, "unknown profile")
		}
		zlog.Error("profile lookup failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	token, err := myjwt.GenerateToken(p.ID, p.FullName, p.Role)
	if err != nil {
		zlog.Error("issue token failed", zap.String("profile_id", p.ID), zap.Error(err))
		return nil, err
	}
	return &respond.LoginRespond{
		ID:       p.ID,
		FullName: p.FullName,
		Role:     p.Role,
		Token:    token,
	}, nil
}
