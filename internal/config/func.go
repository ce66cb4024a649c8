package config

import (
	"os"
	"strconv"
	"time"
)

func lookup(name string) (string, bool) {
	str, ok := os.LookupEnv(name)
	if !ok || len(str) == 0 {
		cache.absent = append(cache.absent, name)
		return "", false
	}
	return str, true
}

func initUint(variable *uint, name string, defaultValue uint) {
	str, ok := lookup(name)
	if !ok {
		*variable = defaultValue
		return
	}
	val, err := strconv.ParseUint(str, 10, 32)
	if err != nil {
		*variable = defaultValue
		return
	}
	*variable = uint(val)
}

func initBool(variable *bool, name string, defaultValue bool) {
	str, ok := lookup(name)
	if !ok {
		*variable = defaultValue
		return
	}
	val, err := strconv.ParseBool(str)
	if err != nil {
		// Numeric flags are accepted too: any non zero value enables
		fval, ferr := strconv.ParseFloat(str, 64)
		if ferr != nil {
			*variable = defaultValue
			return
		}
		val = fval != 0
	}
	*variable = val
}

func initString(variable *string, name string, defaultValue string) {
	str, ok := lookup(name)
	if !ok {
		*variable = defaultValue
		return
	}
	*variable = str
}

// initSeconds parses a (possibly fractional) count of seconds.
// Returns false when the variable is absent or cannot be parsed.
func initSeconds(variable *time.Duration, name string, defaultValue time.Duration) bool {
	str, ok := lookup(name)
	if !ok {
		*variable = defaultValue
		return false
	}
	val, err := strconv.ParseFloat(str, 64)
	if err != nil || val < 0 {
		*variable = defaultValue
		return false
	}
	*variable = time.Duration(val * float64(time.Second))
	return true
}
