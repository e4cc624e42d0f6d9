package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomString returns a random string of the given length drawn from a
// lowercase alphanumeric alphabet, using crypto/rand.
func RandomString(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// Int64ToStr converts an int64 to its string representation.
func Int64ToStr(num int64) string {
	return strconv.FormatInt(num, 10)
}
