package config

import (
	"math"
	"strconv"
	"strings"

	sederr "github.com/sedstack/sedinit/internal/errors"
)

// Float reads a required floating point value.
func Float(s Store, section, key string) (float64, error) {
	raw, err := s.GetString(section, key, "")
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, sederr.MalformedValue(section, key, raw, "a number")
	}
	return f, nil
}

// Int reads a required integer value.
func Int(s Store, section, key string) (int, error) {
	raw, err := s.GetString(section, key, "")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, sederr.MalformedValue(section, key, raw, "an integer")
	}
	return n, nil
}
