package ratelimit

import (
	"fmt"
	"strconv"
	"strings"
)

var rateUnits = map[string]int64{
	"":  1,
	"K": 1 << 10,
	"M": 1 << 20,
	"G": 1 << 30,
}

// ParseRate parses a bandwidth such as "512K", "10M", "1G" or "2.5MB/s"
// into bytes per second. Units are powers of 1024. An empty string or "0"
// means unlimited and yields 0.
func ParseRate(s string) (int64, error) {
	value := strings.ToUpper(strings.TrimSpace(s))
	if value == "" {
		return 0, nil
	}
	value = strings.TrimSuffix(value, "/S")
	value = strings.TrimSuffix(value, "B")

	unit := ""
	if n := len(value); n > 0 {
		if _, ok := rateUnits[value[n-1:]]; ok {
			unit = value[n-1:]
			value = value[:n-1]
		}
	}

	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || number < 0 {
		return 0, fmt.Errorf("invalid bandwidth %q: expected a number with an optional K, M or G suffix", s)
	}
	return int64(number * float64(rateUnits[unit])), nil
}
