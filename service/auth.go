package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"storefront/constants"
	"storefront/helper"
	"storefront/model"
)

type AccountStore interface {
	FindByUsername(ctx context.Context, username string) (*model.Account, error)
}

type AuthService struct {
	accounts AccountStore
	secret   []byte
	ttl      time.Duration
	log      *slog.Logger
}

func NewAuthService(accounts AccountStore, secret string, ttl time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{accounts: accounts, secret: []byte(secret), ttl: ttl, log: log}
}

func (s *AuthService) Login(ctx context.Context, input model.LoginInput) (*model.TokenData, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, newError(KindValidation, constants.MISSING_LOGIN_INPUT, nil)
	}

	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, newError(KindUnauthorized, constants.INVALID_CREDENTIALS, err)
		}
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !helper.CheckPasswordHash(input.Password, account.Password) {
		s.log.Warn("failed login", slog.String("username", username))
		return nil, newError(KindUnauthorized, constants.INVALID_CREDENTIALS, nil)
	}
	if !account.Active {
		return nil, newError(KindUnauthorized, constants.ACCOUNT_NOT_ACTIVE, nil)
	}

	token, err := helper.GenerateAccessToken(s.secret, model.TokenClaim{
		AccountId: account.ID,
		Username:  account.Username,
		Role:      account.Role,
	}, s.ttl)
	if err != nil {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return &model.TokenData{AccessToken: token, ExpiresIn: int64(s.ttl.Seconds())}, nil
}
