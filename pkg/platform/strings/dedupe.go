// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// SplitList splits a comma-separated setting such as a broker list and
// returns its distinct, trimmed, non-empty elements.
//
//	SplitList("kafka-1:9092, kafka-2:9092,,kafka-1:9092")
//	// Returns: []string{"kafka-1:9092", "kafka-2:9092"}
func SplitList(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(csv, ","))
}

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
