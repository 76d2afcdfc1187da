package query

import (
	"fmt"
	"sort"
	"strings"
)

// AggregateKind identifies one of the closed set of supported aggregations.
// The zero value is KindCount.
type AggregateKind int

const (
	// KindCount counts rows (or non-null values of a column).
	KindCount AggregateKind = iota
	// KindSum sums a numeric column.
	KindSum
	// KindAvg averages a numeric column.
	KindAvg
	// KindMin takes the minimum value of a column.
	KindMin
	// KindMax takes the maximum value of a column.
	KindMax
	// KindBitXor computes a bitwise XOR checksum over a column.
	KindBitXor
	// KindBitAnd computes a bitwise AND over a column.
	KindBitAnd
	// KindBitOr computes a bitwise OR over a column.
	KindBitOr
)

// kindNames maps configuration names to aggregate kinds. This is the full
// registry: a name outside this map is an unknown aggregation.
var kindNames = map[string]AggregateKind{
	"count":   KindCount,
	"sum":     KindSum,
	"avg":     KindAvg,
	"min":     KindMin,
	"max":     KindMax,
	"bit_xor": KindBitXor,
	"bit_and": KindBitAnd,
	"bit_or":  KindBitOr,
}

// String returns the canonical configuration name for the kind.
func (k AggregateKind) String() string {
	switch k {
	case KindCount:
		return "count"
	case KindSum:
		return "sum"
	case KindAvg:
		return "avg"
	case KindMin:
		return "min"
	case KindMax:
		return "max"
	case KindBitXor:
		return "bit_xor"
	case KindBitAnd:
		return "bit_and"
	case KindBitOr:
		return "bit_or"
	default:
		return "unknown"
	}
}

// Field builds an aggregate field descriptor for a column under an alias.
func (k AggregateKind) Field(column, alias string) AggregateField {
	return AggregateField{Kind: k, Column: column, Alias: alias}
}

// ParseAggregateKind resolves a configuration name to an aggregate kind.
// Returns an *UnknownAggregationError for names outside the registry.
func ParseAggregateKind(name string) (AggregateKind, error) {
	k, ok := kindNames[strings.ToLower(name)]
	if !ok {
		return 0, &UnknownAggregationError{
			Kind:      name,
			Available: SupportedAggregations(),
		}
	}
	return k, nil
}

// SupportedAggregations returns all supported aggregation names (sorted).
func SupportedAggregations() []string {
	names := make([]string, 0, len(kindNames))
	for name := range kindNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownAggregationError is returned when an aggregate spec names an
// aggregation outside the supported set.
type UnknownAggregationError struct {
	Kind      string
	Available []string
}

func (e *UnknownAggregationError) Error() string {
	return fmt.Sprintf("unknown aggregation type %q\nAvailable aggregations: %v", e.Kind, e.Available)
}
