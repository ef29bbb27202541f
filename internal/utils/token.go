package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const alfanumericos = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GerarSufixoAleatorio gera uma sequência alfanumérica segura de n caracteres.
func GerarSufixoAleatorio(n int) (string, error) {
	result := make([]byte, n)
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(alfanumericos))))
		if err != nil {
			return "", err
		}
		result[i] = alfanumericos[num.Int64()]
	}
	return string(result), nil
}

// GerarLinkToken gera o token de link público no formato <prefixo>_<timestamp>_<aleatório>.
// Contratos usam o prefixo "ct", termos de autorização usam "tm".
func GerarLinkToken(prefixo string) (string, error) {
	sufixo, err := GerarSufixoAleatorio(12)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%d_%s", prefixo, time.Now().UnixMilli(), sufixo), nil
}
