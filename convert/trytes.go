package convert

import (
	"strings"

	"github.com/iotaledger/giota"
	"github.com/pkg/errors"

	"gitlab.com/semkodev/ccurl/crypt"
)

var (
	ErrInvalidTryte = errors.New("invalid tryte")

	TRYTES           = "NOPQRSTUVWXYZ9ABCDEFGHIJKLM"
	trytesToTritsMap = map[rune][]crypt.Trit{
		'9': {0, 0, 0},
		'A': {1, 0, 0},
		'B': {-1, 1, 0},
		'C': {0, 1, 0},
		'D': {1, 1, 0},
		'E': {-1, -1, 1},
		'F': {0, -1, 1},
		'G': {1, -1, 1},
		'H': {-1, 0, 1},
		'I': {0, 0, 1},
		'J': {1, 0, 1},
		'K': {-1, 1, 1},
		'L': {0, 1, 1},
		'M': {1, 1, 1},
		'N': {-1, -1, -1},
		'O': {0, -1, -1},
		'P': {1, -1, -1},
		'Q': {-1, 0, -1},
		'R': {0, 0, -1},
		'S': {1, 0, -1},
		'T': {-1, 1, -1},
		'U': {0, 1, -1},
		'V': {1, 1, -1},
		'W': {-1, -1, 0},
		'X': {0, -1, 0},
		'Y': {1, -1, 0},
		'Z': {-1, 0, 0},
	}
)

// TritsToTrytes encodes trits three at a time. A trailing partial tryte is
// padded with zero trits.
func TritsToTrytes(trits crypt.Trits) string {
	l := len(trits)
	size := (l + 2) / 3

	index := func(i int) int {
		if i >= l {
			return 0
		}
		return int(trits[i])
	}

	var trytes strings.Builder
	trytes.Grow(size)
	for i := 0; i < size; i++ {
		pos := index(i*3+0) + index(i*3+1)*3 + index(i*3+2)*9 + 13
		trytes.WriteByte(TRYTES[pos])
	}

	return trytes.String()
}

func TrytesToTrits(trytes string) (crypt.Trits, error) {
	if len(trytes) > 0 {
		if _, err := giota.ToTrytes(trytes); err != nil {
			return nil, errors.Wrap(ErrInvalidTryte, err.Error())
		}
	}

	trits := make(crypt.Trits, 0, len(trytes)*3)
	for i, char := range trytes {
		mappedTrits, charIsTryte := trytesToTritsMap[char]
		if !charIsTryte {
			return nil, errors.Wrapf(ErrInvalidTryte, "%q at index %d", char, i)
		}
		trits = append(trits, mappedTrits...)
	}
	return trits, nil
}

func IsTrytes(trytes string, length int) bool {
	if len(trytes) != length {
		return false
	}

	for _, char := range trytes {
		_, charIsTryte := trytesToTritsMap[char]
		if !charIsTryte {
			return false
		}
	}

	return true
}
