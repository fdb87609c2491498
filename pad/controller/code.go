package controller

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeAlphabet holds digits plus consonants, dropping vowels and the
// visually confusable O/I. 31 symbols at length 6 gives a code space near
// 10^9, vastly larger than any plausible active-session count.
const codeAlphabet = "0123456789BCDFGHJKLMNPQRSTVWXYZ"

// CodeLength is the fixed length of pairing codes.
const CodeLength = 6

// randomCode draws one candidate pairing code. The code is the only
// credential for claiming a session, so every symbol comes from an unbiased
// crypto/rand draw. Uniqueness against active sessions is the caller's job.
func randomCode() (string, error) {
	symbols := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, CodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, symbols)
		if err != nil {
			return "", fmt.Errorf("failed to draw random symbol: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
