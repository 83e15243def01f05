package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// Name folds a user supplied name so that lookups are case insensitive.
func Name(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
