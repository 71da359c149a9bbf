package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultBenchSizes are the operand sizes, in bytes, benchmarked by default.
var DefaultBenchSizes = []int{16, 128, 1024}

// DefaultBenchRounds is the default number of iterations per benchmark case.
const DefaultBenchRounds = 20

var memoryUnits = []struct {
	suffix string
	factor int64
}{
	// Longest suffixes first so "MiB" is not read as "B".
	{"KIB", 1 << 10}, {"MIB", 1 << 20}, {"GIB", 1 << 30},
	{"KB", 1000}, {"MB", 1000 * 1000}, {"GB", 1000 * 1000 * 1000},
	{"K", 1 << 10}, {"M", 1 << 20}, {"G", 1 << 30},
	{"B", 1},
}

// ParseMemoryLimit parses a human-readable byte size such as "4096",
// "512KiB", "64MB" or "1G". Binary suffixes (KiB, MiB, GiB and the bare
// K, M, G) are powers of 1024, decimal ones (KB, MB, GB) powers of 1000.
// The empty string and "0" mean unlimited and yield 0.
func ParseMemoryLimit(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	upper := strings.ToUpper(s)
	factor := int64(1)
	for _, u := range memoryUnits {
		if strings.HasSuffix(upper, u.suffix) {
			factor = u.factor
			upper = strings.TrimSpace(strings.TrimSuffix(upper, u.suffix))
			break
		}
	}
	n, err := strconv.ParseInt(upper, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if n > math.MaxInt/factor {
		return 0, fmt.Errorf("size %q is too large", s)
	}
	return int(n * factor), nil
}

// parseSizes parses a comma-separated list of byte sizes.
func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := ParseMemoryLimit(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid bench size %q", part)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
