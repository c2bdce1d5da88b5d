package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner crea usuario y perfil de forma atómica.
type TxRunner interface {
	RunSignUp(ctx context.Context, fn func(users repository.UserRepository, profiles repository.ProfileRepository) error) error
}

// AuthUseCase casos de uso de autenticación: registro, login y usuario actual.
type AuthUseCase struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	tx         TxRunner
	jwtCfg     JWTConfig
	adminEmail string
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. tx puede ser nil (tests).
func NewAuthUseCase(users repository.UserRepository, profiles repository.ProfileRepository, tx TxRunner, jwtCfg JWTConfig, adminEmail string) *AuthUseCase {
	return &AuthUseCase{
		users:      users,
		profiles:   profiles,
		tx:         tx,
		jwtCfg:     jwtCfg,
		adminEmail: normalizeEmail(adminEmail),
		now:        time.Now,
	}
}

// Register crea la cuenta y su perfil. El perfil queda pendiente salvo para el email administrador.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := uc.newProfile(user)
	profile.Name = strings.TrimSpace(in.Name)
	profile.Company = strings.TrimSpace(in.Company)
	profile.Phone = strings.TrimSpace(in.Phone)

	create := func(users repository.UserRepository, profiles repository.ProfileRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		return profiles.Create(ctx, profile)
	}
	if uc.tx != nil {
		err = uc.tx.RunSignUp(ctx, create)
	} else {
		err = create(uc.users, uc.profiles)
	}
	if err != nil {
		return nil, err
	}
	return ToUserResponse(profile), nil
}

// Login verifica email/password y genera un JWT con el rol efectivo.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	profile, err := uc.Profile(ctx, user)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.roleFor(profile), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(profile)
	resp.Role = uc.roleFor(profile)
	return &dto.LoginResponse{Token: token, User: *resp}, nil
}

// Me devuelve el usuario actual con el rol vigente (puede haber cambiado desde el login).
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	profile, err := uc.Profile(ctx, user)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(profile)
	resp.Role = uc.roleFor(profile)
	return resp, nil
}

// ResolveRole devuelve el rol efectivo del usuario: admin, mayorista_autorizado o solicitante.
func (uc *AuthUseCase) ResolveRole(ctx context.Context, userID string) (string, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	profile, err := uc.Profile(ctx, user)
	if err != nil {
		return "", err
	}
	return uc.roleFor(profile), nil
}

// Profile devuelve el perfil del usuario; si no existe lo crea como solicitante pendiente.
func (uc *AuthUseCase) Profile(ctx context.Context, user *entity.User) (*entity.UserProfile, error) {
	profile, err := uc.profiles.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}
	profile = uc.newProfile(user)
	if err := uc.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *AuthUseCase) newProfile(user *entity.User) *entity.UserProfile {
	now := uc.now()
	profile := &entity.UserProfile{
		ID:        user.ID,
		Email:     user.Email,
		Status:    entity.ProfileStatusPending,
		Role:      entity.RoleSolicitante,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if uc.isAdmin(user.Email) {
		profile.Status = entity.ProfileStatusAuthorized
		profile.Role = entity.RoleAdmin
		profile.CanSeePrices = true
	}
	return profile
}

func (uc *AuthUseCase) roleFor(profile *entity.UserProfile) string {
	if uc.isAdmin(profile.Email) {
		return entity.RoleAdmin
	}
	return profile.EffectiveRole()
}

func (uc *AuthUseCase) isAdmin(email string) bool {
	return uc.adminEmail != "" && normalizeEmail(email) == uc.adminEmail
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToUserResponse convierte el perfil a la salida HTTP.
func ToUserResponse(p *entity.UserProfile) *dto.UserResponse {
	if p == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           p.ID,
		Email:        p.Email,
		Name:         p.Name,
		Company:      p.Company,
		Phone:        p.Phone,
		Status:       p.Status,
		Role:         p.Role,
		CanSeePrices: p.CanSeePrices,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
