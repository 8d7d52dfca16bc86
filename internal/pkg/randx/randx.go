/*
Package randx provides functions for generating cryptographically secure random strings
and collision-resistant names for stored files.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// ImageSuffixLength is the number of random Base62 characters appended to image names.
	ImageSuffixLength = 10
)

// Base62 returns a random Base62 string of length n using crypto/rand.
func Base62(n int) (string, error) {
	result := make([]byte, n)

	for i := range n {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// ImageName builds a stored-file name from the upload time, a random component and ext,
// e.g. "1767312000123-4fZk9QxA2b.png". The timestamp keeps names roughly time-ordered;
// the random part makes two uploads in the same millisecond distinct.
// If the random source fails, a UUID is used instead.
func ImageName(now time.Time, ext string) string {
	suffix, err := Base62(ImageSuffixLength)
	if err != nil {
		suffix = strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix + strings.ToLower(ext)
}

// IsValidImageName reports whether name is a bare file name that could have been
// produced by ImageName: no path separators, no parent references, no hidden files.
func IsValidImageName(name string) bool {
	if name == "" || len(name) > 128 {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.Contains(name, "..") {
		return false
	}
	return !strings.ContainsAny(name, `/\`+"\x00")
}
