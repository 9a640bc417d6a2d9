package family

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoNames is returned when a greeting is requested for an empty group.
var ErrNoNames = errors.New("at least one name is required")

// FormatNames joins first names the way the invitations phrase them:
// "Marco", "Marco e Anna", "Marco, Anna e Matteo".
func FormatNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " e " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " e " + names[len(names)-1]
	}
}

// Greeting builds the salutation line for a household. It fails on an
// empty name list rather than producing an anonymous greeting.
func Greeting(names []string) (string, error) {
	if len(names) == 0 {
		return "", ErrNoNames
	}
	return fmt.Sprintf("Ciao %s,", FormatNames(names)), nil
}
