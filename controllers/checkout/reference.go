package checkoutControllers

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"
)

const base36Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewReference builds a human-legible reference such as ORD-MBXK2J1A-7QZ4:
// prefix, base-36 millisecond timestamp, 4 random base-36 characters, all
// uppercase.
func NewReference(prefix string) string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return prefix + "-" + ts + "-" + randBase36(4)
}

func randBase36(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		for i := range bytes {
			bytes[i] = byte(time.Now().UnixNano() >> (i * 8))
		}
	}
	out := make([]byte, n)
	for i, b := range bytes {
		out[i] = base36Chars[int(b)%len(base36Chars)]
	}
	return string(out)
}
