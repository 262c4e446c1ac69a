package api

import (
	"github.com/pkg/errors"

	"gitlab.com/semkodev/ccurl/convert"
	"gitlab.com/semkodev/ccurl/crypt"
	"gitlab.com/semkodev/ccurl/sponge"
)

// inputs collects the tryte inputs followed by the integer trit inputs.
func inputs(request Request) ([]crypt.Trits, error) {
	result := make([]crypt.Trits, 0, len(request.Trytes)+len(request.Trits))
	for i, trytes := range request.Trytes {
		trits, err := convert.TrytesToTrits(trytes)
		if err != nil {
			return nil, errors.Wrapf(err, "trytes %d", i)
		}
		result = append(result, trits)
	}
	for i, values := range request.Trits {
		trits, err := convert.IntsToTrits(values)
		if err != nil {
			return nil, errors.Wrapf(err, "trits %d", i)
		}
		result = append(result, trits)
	}
	return result, nil
}

// checkLimits rejects round counts and lengths outside [0, max]. Zero selects
// the default.
func checkLimits(request Request) error {
	if request.Rounds < 0 || request.Rounds > maxRounds {
		return errors.Errorf("invalid rounds, allowed are 0 to %d", maxRounds)
	}
	if request.Length < 0 || request.Length > maxLength {
		return errors.Errorf("invalid length, allowed are 0 to %d", maxLength)
	}
	return nil
}

// session returns the request session when it is a well formed session id.
func session(request Request) (string, error) {
	if !convert.IsTrytes(request.Session, sponge.SESSION_ID_LENGTH) {
		return "", errors.Errorf("invalid session %q", request.Session)
	}
	return request.Session, nil
}

func mode(request Request) crypt.Mode {
	if request.Legacy {
		return crypt.CompatLegacy
	}
	return 0
}
