// Package simulation implements the reconciliation core for simulation
// budgets: display-row organization, running balances, subgroup subtotals
// and the ordering and visibility rules backing them.
//
// Everything in this package is a pure function over in-memory values.
// Persistence and transport live in internal/models and
// internal/controllers.
package simulation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID identifies a category or subgroup. Identifiers reach the API both
// as UUID strings and as legacy numeric values, so all lookups use the
// canonical string form to avoid 1 vs "1" mismatches.
type ID string

// CanonicalID converts an identifier of any supported source type into
// its canonical form.
func CanonicalID(v any) ID {
	switch value := v.(type) {
	case ID:
		return value
	case string:
		return ID(strings.TrimSpace(value))
	case json.Number:
		return ID(value.String())
	case float64:
		// JSON numbers decode as float64. Integral values must not
		// render with an exponent or a trailing ".0".
		if value == math.Trunc(value) && !math.IsInf(value, 0) {
			return ID(strconv.FormatInt(int64(value), 10))
		}
		return ID(strconv.FormatFloat(value, 'f', -1, 64))
	case int:
		return ID(strconv.Itoa(value))
	case int64:
		return ID(strconv.FormatInt(value, 10))
	case uint64:
		return ID(strconv.FormatUint(value, 10))
	case fmt.Stringer:
		return ID(value.String())
	default:
		return ID(fmt.Sprint(value))
	}
}

// IDSet is a set of identifiers.
type IDSet map[ID]struct{}

// NewIDSet builds a set from the given identifiers.
func NewIDSet(ids ...ID) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether the set contains the identifier.
func (s IDSet) Contains(id ID) bool {
	_, ok := s[id]
	return ok
}
