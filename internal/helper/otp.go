package helper

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// GenerateOtp returns a 6-digit code uniform over [100000, 999999].
func GenerateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
