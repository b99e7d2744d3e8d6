package request

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

type queryPair struct {
	key   string
	value string
}

// MergeQueryToURL combines caller-supplied query parameters with any already
// present in rawURL and rebuilds the URL. The two sources are merged as a set
// of (key, value) pairs: a pair identical in both key and stringified value
// collapses to one entry, while two pairs sharing a key but not a value both
// survive. The encoded ordering is not guaranteed to match either source.
//
// Values must be strings, integers or floats; anything else yields an
// ArgumentError naming the offending key.
func MergeQueryToURL(rawURL string, query map[string]any) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", NewArgumentError(fmt.Sprintf("failed to splice URL and query: %s", err), err)
	}

	existing, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", NewArgumentError(fmt.Sprintf("failed to splice URL and query: %s", err), err)
	}

	set := make(map[queryPair]struct{})
	for k, vs := range existing {
		for _, v := range vs {
			set[queryPair{k, v}] = struct{}{}
		}
	}
	for k, v := range query {
		s, err := queryValueString(k, v)
		if err != nil {
			return "", err
		}
		set[queryPair{k, s}] = struct{}{}
	}

	pairs := make([]queryPair, 0, len(set))
	for p := range set {
		pairs = append(pairs, p)
	}
	// The pair set has no inherent order; sort so the rebuilt URL is
	// deterministic.
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})

	merged := url.Values{}
	for _, p := range pairs {
		merged.Add(p.key, p.value)
	}
	u.RawQuery = merged.Encode()

	return u.String(), nil
}

// queryValueString converts a query parameter value to its wire string.
// JSON-decoded arguments deliver numbers as float64, so integral floats are
// formatted without a decimal point.
func queryValueString(key string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", NewArgumentError(
			fmt.Sprintf("invalid value for query parameter %s: %v. value must be a string, int, or float.", key, value), nil)
	}
}
