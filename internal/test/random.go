package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	lowerAlnum   = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random alphanumeric string with length in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	return randomFrom(alphanumeric, minLen, maxLen)
}

// RandomEmail returns a lower-case address under example.com.
func RandomEmail() string {
	return randomFrom(lowerAlnum, 5, 12) + "@example.com"
}

// RandomOrderToken returns a token accepted by order lookups.
func RandomOrderToken() string {
	var b strings.Builder
	b.WriteString(randomFrom(lowerAlnum, 8, 8))
	b.WriteByte('-')
	b.WriteString(randomFrom(lowerAlnum, 4, 4))
	return b.String()
}

func randomFrom(alphabet string, minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	rngMu.Lock()
	defer rngMu.Unlock()

	length := minLen + rng.Intn(maxLen-minLen+1)
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(buf)
}
