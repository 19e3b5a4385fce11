package room

import (
	"errors"
	"math/rand/v2"
)

const (
	codeLength = 4
	maxRetries = 100
)

// codeAlphabet drops I and O so spectators can read codes aloud without
// confusing them with 1 and 0.
var codeAlphabet = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ")

var ErrNoFreeCode = errors.New("no free room code")

// GenerateCode picks a random room code that taken does not report as in use.
func GenerateCode(taken func(code string) bool) (string, error) {
	for range maxRetries {
		code := randomCode()
		if !taken(code) {
			return code, nil
		}
	}
	return "", ErrNoFreeCode
}

func randomCode() string {
	b := make([]rune, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(b)
}
