package utils

import "testing"

func TestVerificarSenhaComHashBcrypt(t *testing.T) {
	hash, err := HashSenha("segredo-forte")
	if err != nil {
		t.Fatalf("HashSenha: %v", err)
	}
	if !VerificarSenha(hash, "segredo-forte") {
		t.Error("senha correta rejeitada contra o hash")
	}
	if VerificarSenha(hash, "segredo-errado") {
		t.Error("senha errada aceita contra o hash")
	}
}

func TestVerificarSenhaComReferenciaEmTextoPuro(t *testing.T) {
	if !VerificarSenha("admin123", "admin123") {
		t.Error("comparação em texto puro rejeitou a senha correta")
	}
	if VerificarSenha("admin123", "outra") {
		t.Error("comparação em texto puro aceitou senha errada")
	}
}
