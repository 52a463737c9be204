package credential

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const CodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// GenerateCode returns a uniformly random 6-digit string, leading zeros kept.
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is unusable
		panic(fmt.Sprintf("generate passcode: %v", err))
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64())
}
