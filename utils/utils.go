package utils

import (
	"crypto/rand"
	"os"
	"time"

	"github.com/pkg/errors"

	"gitlab.com/semkodev/ccurl/convert"
)

// Largest multiple of 27 below 256. Bytes above it are drawn again so every
// tryte is equally likely.
const tryteByteLimit = 243

// RandomTrytes returns length trytes from crypto/rand.
func RandomTrytes(length int) (string, error) {
	trytes := make([]byte, 0, length)
	buffer := make([]byte, length+length/8+1)
	for len(trytes) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", errors.Wrap(err, "read random bytes")
		}
		for _, b := range buffer {
			if b >= tryteByteLimit {
				continue
			}
			trytes = append(trytes, convert.TRYTES[b%27])
			if len(trytes) == length {
				break
			}
		}
	}
	return string(trytes), nil
}

func CreateDirectory(directoryPath string) error {
	return os.MkdirAll(directoryPath, 0777)
}

func GetHumanReadableTime(timestamp int) string {
	if timestamp <= 0 {
		return ""
	}
	unixTime := time.Unix(int64(timestamp), 0)
	return unixTime.In(time.UTC).Format(time.RFC822)
}
