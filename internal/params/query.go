package params

import (
	"net/url"
	"strings"
)

// Utilities for handling query strings while keeping the order the parameters were given in

// Pair is a single query parameter
type Pair struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters with unique keys
type Query []Pair

// ParseQuery parses a raw query string into an ordered Query
// Keys and values are unescaped. If a key is repeated, the first value is kept at the position it was first seen
func ParseQuery(raw string) Query {
	query := Query{}

	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}

		key, value, _ := strings.Cut(part, "=")
		key = unescape(key)

		if _, exists := query.Get(key); exists {
			continue
		}

		query = append(query, Pair{Key: key, Value: unescape(value)})
	}

	return query
}

// unescape unescapes a query component, falling back to the raw component if it is malformed
func unescape(s string) string {
	if unescaped, err := url.QueryUnescape(s); err == nil {
		return unescaped
	}

	return s
}

// Get returns the value for a key, and whether it exists
func (q Query) Get(key string) (string, bool) {
	for _, pair := range q {
		if pair.Key == key {
			return pair.Value, true
		}
	}

	return "", false
}

// Has returns whether the key exists
func (q Query) Has(key string) bool {
	_, ok := q.Get(key)
	return ok
}

// Without returns a copy of the query with the given keys removed
func (q Query) Without(keys ...string) Query {
	filtered := make(Query, 0, len(q))

	for _, pair := range q {
		if !contains(keys, pair.Key) {
			filtered = append(filtered, pair)
		}
	}

	return filtered
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}

	return false
}

// BuildQuery joins the query parameters as key=value pairs separated by &, in order
// It differs from the stdlib url.Values.Encode in that keys and values are used verbatim, without escaping
func BuildQuery(q Query) string {
	var buf strings.Builder

	for _, pair := range q {
		if buf.Len() > 0 {
			buf.WriteByte('&')
		}

		buf.WriteString(pair.Key)
		buf.WriteByte('=')
		buf.WriteString(pair.Value)
	}

	return buf.String()
}
