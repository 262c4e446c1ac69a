package convert

import (
	"github.com/pkg/errors"

	"gitlab.com/semkodev/ccurl/crypt"
)

var ErrInvalidTrit = errors.New("invalid trit")

func ValidTrit(value int) bool {
	return value >= -1 && value <= 1
}

// ValidTrits reports the first value outside {-1, 0, 1}.
func ValidTrits(trits crypt.Trits) error {
	for i, trit := range trits {
		if !ValidTrit(int(trit)) {
			return errors.Wrapf(ErrInvalidTrit, "%d at index %d", trit, i)
		}
	}
	return nil
}

// IntsToTrits is the entry point for integer input from outside the
// process. Nothing reaches the sponge without passing through here or
// TrytesToTrits.
func IntsToTrits(values []int) (crypt.Trits, error) {
	trits := make(crypt.Trits, len(values))
	for i, value := range values {
		if !ValidTrit(value) {
			return nil, errors.Wrapf(ErrInvalidTrit, "%d at index %d", value, i)
		}
		trits[i] = crypt.Trit(value)
	}
	return trits, nil
}

func TritsToInts(trits crypt.Trits) []int {
	values := make([]int, len(trits))
	for i, trit := range trits {
		values[i] = int(trit)
	}
	return values
}
