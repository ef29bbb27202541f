package parceiro

import (
	"strconv"
	"testing"
)

func TestAcrescentarAcessoMantemNoMaximo50Entradas(t *testing.T) {
	var acessos []string
	for i := 0; i < 120; i++ {
		acessos = acrescentarAcesso(acessos, "t"+strconv.Itoa(i))
	}
	if len(acessos) != limiteLogAcessos {
		t.Fatalf("log com %d entradas, esperado %d", len(acessos), limiteLogAcessos)
	}
	if acessos[0] != "t119" {
		t.Errorf("entrada mais recente = %q, esperado t119", acessos[0])
	}
	if acessos[len(acessos)-1] != "t70" {
		t.Errorf("entrada mais antiga = %q, esperado t70", acessos[len(acessos)-1])
	}
}
