package cmd

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// parseHeaderFlags converts repeated "Name: value" flags into a header map.
func parseHeaderFlags(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(flags))
	for _, f := range flags {
		name, value, found := strings.Cut(f, ":")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf(`invalid header %q, expected "Name: value"`, f)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers, nil
}

// parseObjectFlag parses a JSON object flag into a generic map, keeping the
// string/number distinction intact for the query value validator.
func parseObjectFlag(name, value string) (map[string]any, error) {
	if value == "" {
		return nil, nil
	}
	if !gjson.Valid(value) {
		return nil, fmt.Errorf("invalid --%s value: not valid JSON", name)
	}
	parsed := gjson.Parse(value)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("invalid --%s value: expected a JSON object", name)
	}

	out := make(map[string]any)
	parsed.ForEach(func(k, v gjson.Result) bool {
		out[k.String()] = v.Value()
		return true
	})
	return out, nil
}

// parseJSONFlag parses a JSON document flag into a value for serialization
// as the request body.
func parseJSONFlag(value string) (any, error) {
	var body any
	if err := json.Unmarshal([]byte(value), &body); err != nil {
		return nil, fmt.Errorf("invalid --json value: %w", err)
	}
	return body, nil
}
