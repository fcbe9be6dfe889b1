package token

// Generator produces unguessable opaque tokens of the requested length.
// Implementations must draw from a cryptographically strong random source.
type Generator interface {
	GenerateToken(length int) Token
}
