package jwt_generator

import (
	"regexp"
	"strconv"
	"time"
)

// DefaultExpiresIn is the fallback validity window applied when an
// expiry string cannot be parsed. The fallback is deliberate: callers
// must not rely on parse failure being observable.
const DefaultExpiresIn = 24 * time.Hour

var expiresInPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseExpiresIn parses expiry strings of the form "<integer><unit>"
// with unit one of s, m, h, d ("1d", "24h", "15m", "30s").
func ParseExpiresIn(expiresIn string) time.Duration {
	match := expiresInPattern.FindStringSubmatch(expiresIn)
	if match == nil {
		return DefaultExpiresIn
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return DefaultExpiresIn
	}

	switch match[2] {
	case "s":
		return time.Duration(value) * time.Second
	case "m":
		return time.Duration(value) * time.Minute
	case "h":
		return time.Duration(value) * time.Hour
	default:
		return time.Duration(value) * 24 * time.Hour
	}
}

// ExpiresInSeconds reports an expiry string as whole seconds, the unit
// every token response exposes to clients.
func ExpiresInSeconds(expiresIn string) int64 {
	return int64(ParseExpiresIn(expiresIn) / time.Second)
}
