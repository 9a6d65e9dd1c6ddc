package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ne-taxonomy/internal/application/dto"
	"github.com/jhoicas/ne-taxonomy/internal/domain"
	"github.com/jhoicas/ne-taxonomy/internal/domain/entity"
	"github.com/jhoicas/ne-taxonomy/internal/domain/repository"
	"github.com/jhoicas/ne-taxonomy/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// AuthUseCase casos de uso de autenticación: alta, login y gestión de cuentas.
type AuthUseCase struct {
	accountRepo repository.AccountRepository
	jwtCfg      JWTConfig
	cost        int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(accountRepo repository.AccountRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{accountRepo: accountRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost}
}

// WithBcryptCost ajusta el coste de bcrypt (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// Register crea una cuenta: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AccountResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RoleAdmin {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	account := &entity.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         role,
		Status:       entity.AccountActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// EnsureAdmin crea la cuenta administradora si el email aún no existe.
// Devuelve true si la creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	_, err := uc.Register(ctx, dto.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: "Administrator",
		Role:     entity.RoleAdmin,
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Login verifica email/password, genera JWT y retorna token + cuenta.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.accountRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if account.Status != entity.AccountActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, account.ID, account.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Account: *toAccountResponse(account),
	}, nil
}

// ListAccounts lista todas las cuentas (sin hashes).
func (uc *AuthUseCase) ListAccounts(ctx context.Context) (*dto.AccountListResponse, error) {
	list, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAccountResponse(a))
	}
	return &dto.AccountListResponse{Items: items, Total: len(items)}, nil
}

// DeleteAccount elimina la cuenta id. Un administrador no puede eliminarse a sí mismo.
func (uc *AuthUseCase) DeleteAccount(ctx context.Context, actorID, id string) error {
	if !validAccountID(id) {
		return domain.ErrNotFound
	}
	if id == actorID {
		return fmt.Errorf("%w: no puede eliminar su propia cuenta", domain.ErrInvalidInput)
	}
	return uc.accountRepo.Delete(ctx, id)
}

// SetStatus activa o desactiva la cuenta id. Las cuentas inactivas no pueden iniciar sesión.
func (uc *AuthUseCase) SetStatus(ctx context.Context, actorID, id, status string) (*dto.AccountResponse, error) {
	if !validAccountID(id) {
		return nil, domain.ErrNotFound
	}
	if status != entity.AccountActive && status != entity.AccountInactive {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, status)
	}
	if id == actorID && status == entity.AccountInactive {
		return nil, fmt.Errorf("%w: no puede desactivar su propia cuenta", domain.ErrInvalidInput)
	}
	if err := uc.accountRepo.UpdateStatus(ctx, id, status, time.Now()); err != nil {
		return nil, err
	}
	return uc.getAccount(ctx, id)
}

// ChangePassword cambia la contraseña de la cuenta id tras verificar la actual.
// Devuelve ErrUnauthorized si la contraseña actual no coincide.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, id string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < MinPasswordLength {
		return fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), uc.cost)
	if err != nil {
		return err
	}
	return uc.accountRepo.UpdatePassword(ctx, id, string(hash), time.Now())
}

func (uc *AuthUseCase) getAccount(ctx context.Context, id string) (*dto.AccountResponse, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return toAccountResponse(account), nil
}

func validAccountID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	return &dto.AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		FullName:  a.FullName,
		Role:      a.Role,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
