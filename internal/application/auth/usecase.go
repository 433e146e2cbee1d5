// Package auth acceso opcional del operador de la consola y propagación de su identidad
// hasta la API GraphQL.
package auth

import (
	"crypto/subtle"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/domain"
	"github.com/mdaskas/customer-console/pkg/jwt"
)

// RoleOperator único rol de la consola.
const RoleOperator = "operator"

// Config credenciales del operador y parámetros del token de sesión.
type Config struct {
	Operator     string
	PasswordHash string // bcrypt; vacío = acceso deshabilitado
	JWTSecret    string
	ExpMinutes   int
	Issuer       string
}

// UseCase login y verificación de sesiones.
type UseCase struct {
	cfg Config
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(cfg Config) *UseCase {
	if cfg.ExpMinutes <= 0 {
		cfg.ExpMinutes = 480
	}
	return &UseCase{cfg: cfg}
}

// Enabled indica si la consola exige login.
func (uc *UseCase) Enabled() bool {
	return uc.cfg.PasswordHash != ""
}

// Login verifica usuario/password con bcrypt y devuelve un token de sesión firmado.
func (uc *UseCase) Login(in dto.LoginForm) (*dto.LoginResponse, error) {
	if !uc.Enabled() {
		return nil, domain.ErrUnauthorized
	}
	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(uc.cfg.Operator)) == 1
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.PasswordHash), []byte(in.Password)); err != nil || !userOK {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.cfg.JWTSecret, uc.cfg.Operator, RoleOperator, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Operator: uc.cfg.Operator}, nil
}

// Verify valida un token de sesión y devuelve el operador.
func (uc *UseCase) Verify(token string) (string, error) {
	operator, _, err := jwt.Parse(uc.cfg.JWTSecret, token)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	return operator, nil
}

// SessionTTL duración de la cookie de sesión.
func (uc *UseCase) SessionTTL() time.Duration {
	return time.Duration(uc.cfg.ExpMinutes) * time.Minute
}
