package internal

import "math/rand/v2"

// GenerateID returns a random alphanumeric identifier. It's used for snapshot IDs and names of
// private in-memory databases.
func GenerateID() string {
	const (
		charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
		n       = 16
	)
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[rand.IntN(len(charset))]
	}
	return string(b)
}
