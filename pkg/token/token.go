// Package token emite e valida os tokens de acesso do painel administrativo.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("token inválido")
	ErrTokenExpired = errors.New("token expirado")
)

// Claims são as claims emitidas no login. Os nomes seguem o que o painel e o
// app já esperam encontrar no payload (isAdmin, nivelAcesso).
type Claims struct {
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"isAdmin"`
	NivelAcesso int    `json:"nivelAcesso"`
	jwt.RegisteredClaims
}

// Manager emite e valida tokens HS256.
type Manager struct {
	secret   []byte
	duration time.Duration
	issuer   string
}

func NewManager(secret string, duration time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("JWT secret não configurado")
	}

	return &Manager{
		secret:   []byte(secret),
		duration: duration,
		issuer:   "lopes-agenda",
	}, nil
}

// Generate emite um token assinado para o usuário autenticado.
func (m *Manager) Generate(nome, email string, isAdmin bool, nivelAcesso int) (string, error) {
	now := time.Now()

	claims := &Claims{
		Nome:        nome,
		Email:       email,
		IsAdmin:     isAdmin,
		NivelAcesso: nivelAcesso,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   email,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate verifica assinatura e validade e devolve as claims como mapa —
// o formato que adminaccess.IsClaimsAdmin consome.
func (m *Manager) Validate(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return map[string]interface{}(claims), nil
}
