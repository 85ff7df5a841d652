package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims do token emitido pelo CRM (inclui RBAC simples: IsAdmin)
type Claims struct {
	UserID  uint `json:"userId"`
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Validador confere tokens HS256 assinados com o segredo compartilhado do CRM.
type Validador struct {
	segredo []byte
	agora   func() time.Time
}

// NovoValidador cria um validador; segredo vazio é erro de configuração.
func NovoValidador(segredo string) (*Validador, error) {
	if segredo == "" {
		return nil, errors.New("JWT_SECRET não definida")
	}
	return &Validador{segredo: []byte(segredo), agora: time.Now}, nil
}

// Validar confere assinatura e expiração e devolve as claims.
func (v *Validador) Validar(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.agora),
	)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.segredo, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("claims inválidas")
	}
	if c.UserID == 0 {
		return nil, errors.New("token sem usuário")
	}
	return c, nil
}
