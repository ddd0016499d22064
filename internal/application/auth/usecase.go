// Package auth registra usuarios y emite tokens de acceso.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/javrojas/Almacen-api/internal/application/dto"
	"github.com/javrojas/Almacen-api/internal/domain"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
	"github.com/javrojas/Almacen-api/internal/domain/repository"
	"github.com/javrojas/Almacen-api/pkg/jwt"
)

// UseCase casos de uso de autenticación.
type UseCase struct {
	users      repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
}

func NewUseCase(users repository.UserRepository, jwtSecret, jwtIssuer string, expMinutes int) *UseCase {
	return &UseCase{users: users, jwtSecret: jwtSecret, jwtIssuer: jwtIssuer, expMinutes: expMinutes}
}

func validRole(r string) bool {
	return r == entity.RoleAdmin || r == entity.RoleOperario || r == entity.RoleVendedor
}

// Register crea un usuario con su nivel de acceso.
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: la contraseña requiere al menos 8 caracteres", domain.ErrInvalidInput)
	}
	if !validRole(req.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, req.Role)
	}

	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar usuario: %v", domain.ErrDataAccess, err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}

	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         req.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("%w: crear usuario: %v", domain.ErrDataAccess, err)
	}
	return u, nil
}

// Login verifica credenciales y emite el token. Devuelve ErrUnauthorized
// sin distinguir email inexistente de contraseña incorrecta.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar usuario: %v", domain.ErrDataAccess, err)
	}
	if u == nil || u.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtSecret, u.ID, u.Role, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role},
	}, nil
}
