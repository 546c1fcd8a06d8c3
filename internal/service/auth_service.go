package service

import (
	"context"
	"fmt"
	"strings"

	"sweetshop-api/internal/core/auth"
	"sweetshop-api/internal/domain"
	"sweetshop-api/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// Register 邮箱先查后插（并发撞同名邮箱属已接受的竞态，唯一索引兜底）。
// role 缺省 customer；非法角色直接拒。
func (s *AuthService) Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = domain.RoleCustomer
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if isDupKey(err) {
			// 竞态输家：唯一索引把第二次注册顶了回来
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login 查无此人和密码错都返回同一个错误，不泄露是哪一步挂了
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.jwter.Issue(u.ID, string(u.Role))
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, u, nil
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "unique")
}
