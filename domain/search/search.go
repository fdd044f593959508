package search

import (
	"strconv"
	"strings"
)

// Query represents the structured parameters for a message search.
// It decouples the raw user input from the index engine requirements.
type Query struct {
	RawInput string // The original query string from the user
	Terms    string // The actual text to search in the index
	RoomID   int    // Target room, 0 means every room
	Limit    int    // Number of results
}

// NewQuery parses a raw string to extract command-line style arguments.
// Example: invoice overdue --room 12 --limit 5
func NewQuery(input string) *Query {
	query := &Query{
		RawInput: input,
		Limit:    10, // Default limit
	}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			val := parts[i+1]

			if n, err := strconv.Atoi(val); err == nil {
				switch key {
				case "room":
					query.RoomID = n
				case "limit":
					query.Limit = n
				}
			}
			i++ // Skip the value part in next iteration
			continue
		}

		textTerms = append(textTerms, part)
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}
