package utils

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashSenha gera um hash bcrypt para a senha informada.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// VerificarSenha aceita tanto um hash bcrypt quanto a senha em texto puro como
// referência (caso do ADMIN_PASSWORD vindo direto do ambiente).
func VerificarSenha(referencia, senha string) bool {
	if strings.HasPrefix(referencia, "$2a$") || strings.HasPrefix(referencia, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(referencia), []byte(senha)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(referencia), []byte(senha)) == 1
}
