package words

import (
	"crypto/rand"
	"errors"
	"math/big"
)

var errNoCandidates = errors.New("words: no candidates")

// RandomPicker picks a solo secret uniformly at random using crypto/rand.
type RandomPicker struct{}

// Pick returns one element of list.
func (RandomPicker) Pick(list []string) (string, error) {
	if len(list) == 0 {
		return "", errNoCandidates
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return "", err
	}
	return list[n.Int64()], nil
}
