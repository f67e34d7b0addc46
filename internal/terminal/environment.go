// Package terminal decides whether log output on stderr is interactive and
// whether the report on stdout and the logs on stderr may use ANSI color.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Environment is the view of the process the detection works from.
type Environment struct {
	LookupEnv  func(key string) (string, bool)
	IsTerminal func(fd int) bool
}

// SystemEnvironment reads the real process environment and file descriptors.
func SystemEnvironment() Environment {
	return Environment{
		LookupEnv:  os.LookupEnv,
		IsTerminal: term.IsTerminal,
	}
}

// MapEnvironment returns an Environment backed by vars in which the listed
// descriptors are terminals.
func MapEnvironment(vars map[string]string, terminalFDs ...int) Environment {
	return Environment{
		LookupEnv: func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		},
		IsTerminal: func(fd int) bool {
			for _, t := range terminalFDs {
				if t == fd {
					return true
				}
			}
			return false
		},
	}
}

func (e Environment) getenv(key string) string {
	v, _ := e.LookupEnv(key)
	return v
}

func (e Environment) isSet(key string) bool {
	_, ok := e.LookupEnv(key)
	return ok
}

// isTruthy accepts "1", "true" and "yes" (case insensitive)
func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// isFalsy accepts "0", "false" and "no" (case insensitive)
func isFalsy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no":
		return true
	default:
		return false
	}
}
