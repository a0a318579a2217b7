package service

import (
	"context"
	"time"

	"github.com/begamot/pethosting/internal/domain"
	"github.com/begamot/pethosting/internal/security"
)

type UserRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// UserService — справочник аккаунтов. Ядро чата им не владеет и
// обращается только через Create/Get.
type UserService struct {
	userRepo  UserRepo
	bcryptCfg *security.BcryptConfig
}

func NewUserService(userRepo UserRepo, bcryptCfg *security.BcryptConfig) *UserService {
	return &UserService{userRepo: userRepo, bcryptCfg: bcryptCfg}
}

// Create хеширует пароль и заводит аккаунт вместе с профилем.
// Рейтинг нового пользователя — 0 до первого отзыва.
func (s *UserService) Create(ctx context.Context, name, contact, password string, avatar *string) (domain.User, error) {
	hash, err := security.HashPassword(password, s.bcryptCfg)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		Name:         name,
		Contact:      contact,
		PasswordHash: hash,
		Avatar:       avatar,
		CreatedAt:    time.Now(),
	}
	return s.userRepo.Create(ctx, u)
}

func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.userRepo.Get(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}
