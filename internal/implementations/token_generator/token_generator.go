package tokengenerator

import (
	"authbox/internal/core/domain/token"
	"crypto/rand"
	"encoding/hex"
)

// Generator produces hex tokens from crypto/rand, 4 bits of entropy per
// character.
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateToken(length int) token.Token {
	if length <= 0 {
		panic("token length must be positive")
	}
	b := make([]byte, (length+1)/2)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failure means the process has no usable random source.
		panic(err)
	}
	return token.Token(hex.EncodeToString(b)[:length])
}
