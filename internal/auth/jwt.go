package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims do token de sessão administrativa.
type Claims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Autenticador emite e valida JWTs HS256. O segredo vem da configuração,
// montado uma vez no boot.
type Autenticador struct {
	segredo []byte
}

func NewAutenticador(segredo string) *Autenticador {
	return &Autenticador{segredo: []byte(segredo)}
}

// GerarToken gera um JWT com validade de 24h.
func (a *Autenticador) GerarToken(isAdmin bool) (string, error) {
	claims := &Claims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.segredo)
}

// ValidarToken valida o token e retorna as claims.
func (a *Autenticador) ValidarToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.segredo, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("não foi possível extrair claims")
	}
	return claims, nil
}
