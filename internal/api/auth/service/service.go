package authService

import (
	"MeridianBackend/internal/api/auth"
	authRepository "MeridianBackend/internal/api/auth/repository"
	"MeridianBackend/pkg/bcrypt"
	"MeridianBackend/pkg/redis"
	"MeridianBackend/pkg/utils"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const sessionDuration = 24 * time.Hour

type IAuthService interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	GetProfile(ctx context.Context, userID string) (auth.UserResponse, error)
}

type authService struct {
	log      *logrus.Logger
	authRepo authRepository.Repository
	sessions redis.IRedis
	bcrypt   bcrypt.IBcrypt
	utils    utils.IUtils
	now      func() time.Time
}

func New(
	log *logrus.Logger,
	authRepo authRepository.Repository,
	sessions redis.IRedis,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
) IAuthService {
	return &authService{
		log:      log,
		authRepo: authRepo,
		sessions: sessions,
		bcrypt:   bcryptUtils,
		utils:    utils,
		now:      time.Now,
	}
}
