package services

import (
	"context"
	"errors"
	"strings"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/helper"
	"github.com/SundayYogurt/pim_service/internal/interfaces"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type UserService interface {
	// Auth
	Register(ctx context.Context, input dto.RegisterRequest) (*domain.User, error)
	Login(input dto.UserLogin) (*dto.LoginResponse, error)
	Me(userID uint) (*domain.User, error)

	// Admin
	IsAdmin(userID uint) (bool, error)
	List(page dto.PageQuery) ([]domain.User, int64, error)
	Create(ctx context.Context, actorID uint, input dto.UserCreateRequest) (*domain.User, error)
}

type userService struct {
	repo     repository.UserRepository
	auth     helper.Auth
	recorder interfaces.AuditRecorder
	log      *zap.Logger
}

func NewUserService(
	repo repository.UserRepository,
	auth helper.Auth,
	recorder interfaces.AuditRecorder,
	log *zap.Logger,
) UserService {
	return &userService{
		repo:     repo,
		auth:     auth,
		recorder: recorder,
		log:      log,
	}
}

// AUTH
// Register creates an editor. The very first account becomes admin so a
// fresh install can be bootstrapped from the UI.
func (u *userService) Register(ctx context.Context, input dto.RegisterRequest) (*domain.User, error) {
	usr, err := u.createUser(input.Email, input.Password, input.Name, "", u.repo.CreateRegistered)
	if err != nil {
		return nil, err
	}

	committed(ctx, u.recorder, domain.EntityUser, usr.ID, domain.ActionCreate, nil, usr, usr.ID)
	return usr, nil
}

func (u *userService) Login(input dto.UserLogin) (*dto.LoginResponse, error) {
	email := helper.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, badRequest(MsgCredentials)
	}

	usr, err := u.repo.FindUserByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, unauthorized(MsgWrongCredentials)
	}
	if err != nil {
		return nil, internal(u.log, "find user", err)
	}

	if err := u.auth.VerifyPassword(input.Password, usr.PasswordHash); err != nil {
		return nil, unauthorized(MsgWrongCredentials)
	}

	token, err := u.auth.GenerateToken(usr.ID, usr.Email)
	if err != nil {
		return nil, internal(u.log, "generate token", err)
	}

	return &dto.LoginResponse{Token: token, User: usr}, nil
}

func (u *userService) Me(userID uint) (*domain.User, error) {
	usr, err := u.repo.FindUserById(userID)
	if err != nil {
		return nil, repoErr(u.log, "find user", err, MsgUserNotFound, "")
	}
	return usr, nil
}

// ADMIN
func (u *userService) IsAdmin(userID uint) (bool, error) {
	usr, err := u.repo.FindUserById(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, internal(u.log, "find user", err)
	}
	return usr.IsAdmin(), nil
}

func (u *userService) List(page dto.PageQuery) ([]domain.User, int64, error) {
	users, total, err := u.repo.List(page)
	if err != nil {
		return nil, 0, internal(u.log, "list users", err)
	}
	return users, total, nil
}

func (u *userService) Create(ctx context.Context, actorID uint, input dto.UserCreateRequest) (*domain.User, error) {
	role := strings.ToUpper(strings.TrimSpace(input.Role))
	if role == "" {
		role = domain.RoleEditor
	}
	if role != domain.RoleAdmin && role != domain.RoleEditor {
		return nil, badRequest(MsgInvalidRole)
	}

	usr, err := u.createUser(input.Email, input.Password, input.Name, role, u.repo.CreateUser)
	if err != nil {
		return nil, err
	}

	committed(ctx, u.recorder, domain.EntityUser, usr.ID, domain.ActionCreate, nil, usr, actorID)
	return usr, nil
}

func (u *userService) createUser(email, password, name, role string, create func(*domain.User) (*domain.User, error)) (*domain.User, error) {
	email = helper.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, badRequest(MsgCredentials)
	}
	if len(password) < minPasswordLength {
		return nil, badRequest(MsgPasswordTooShort)
	}

	hashed, err := helper.HashPassword(password)
	if err != nil {
		return nil, internal(u.log, "hash password", err)
	}

	usr, err := create(&domain.User{
		Email:        email,
		PasswordHash: hashed,
		Name:         strings.TrimSpace(name),
		Role:         role,
	})
	if err != nil {
		return nil, repoErr(u.log, "create user", err, MsgUserNotFound, MsgDuplicateEmail)
	}
	return usr, nil
}
