package auth

import "testing"

func TestGerarEValidarToken(t *testing.T) {
	a := NewAutenticador("segredo-de-teste")

	token, err := a.GerarToken(true)
	if err != nil {
		t.Fatalf("GerarToken: %v", err)
	}

	claims, err := a.ValidarToken(token)
	if err != nil {
		t.Fatalf("ValidarToken: %v", err)
	}
	if !claims.IsAdmin {
		t.Error("claim isAdmin deveria ser true")
	}
}

func TestValidarTokenRejeitaSegredoDiferente(t *testing.T) {
	emissor := NewAutenticador("segredo-a")
	validador := NewAutenticador("segredo-b")

	token, err := emissor.GerarToken(true)
	if err != nil {
		t.Fatalf("GerarToken: %v", err)
	}
	if _, err := validador.ValidarToken(token); err == nil {
		t.Error("token assinado com outro segredo deveria ser rejeitado")
	}
}

func TestValidarTokenRejeitaLixo(t *testing.T) {
	a := NewAutenticador("segredo-de-teste")
	if _, err := a.ValidarToken("não-é-um-jwt"); err == nil {
		t.Error("string arbitrária deveria ser rejeitada")
	}
}
