// Package jsonx parses loosely-formatted JSON coming back from remote
// agents. Agent output is not under our control: keys may be unquoted,
// commas trailing, whole objects wrapped in markdown fences. Everything
// here degrades instead of failing.
package jsonx

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// Repair attempts to fix common JSON defects in agent output:
// missing quotes around keys, single quotes, unclosed brackets,
// trailing commas, comments, markdown code fences.
func Repair(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// Decode tries multiple parsing strategies until one yields a value.
// Order of attempts:
// 1. Standard JSON parse
// 2. JSON repair, then parse
// 3. Hjson parse (most lenient)
func Decode(input string) (interface{}, error) {
	var value interface{}

	if err := json.Unmarshal([]byte(input), &value); err == nil {
		return value, nil
	}

	if repaired, err := Repair(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), &value); err == nil {
			return value, nil
		}
	}

	if err := hjson.Unmarshal([]byte(input), &value); err == nil {
		return value, nil
	}

	return nil, fmt.Errorf("DECODE_FAILED: no parsing strategy produced a value")
}

// Compact serializes a decoded value back to canonical JSON.
// Returns "{}" when the value cannot be marshaled.
func Compact(value interface{}) string {
	data, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(data)
}
