package jsonx

import "testing"

func TestDecodeStrictJSON(t *testing.T) {
	value, err := Decode(`{"safe_to_spend": 1200.5}`)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	m, ok := value.(map[string]interface{})
	if !ok {
		t.Fatalf("decoded value is %T, want map", value)
	}
	if m["safe_to_spend"] != 1200.5 {
		t.Fatalf("safe_to_spend = %v, want 1200.5", m["safe_to_spend"])
	}
}

func TestDecodeRepairsFencedOutput(t *testing.T) {
	input := "```json\n{\"advice\": \"cut dining out\",}\n```"
	value, err := Decode(input)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	m, ok := value.(map[string]interface{})
	if !ok {
		t.Fatalf("decoded value is %T, want map", value)
	}
	if m["advice"] != "cut dining out" {
		t.Fatalf("advice = %v", m["advice"])
	}
}

func TestDecodeLenientKeys(t *testing.T) {
	value, err := Decode("{analysis_period: March}")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	m, ok := value.(map[string]interface{})
	if !ok {
		t.Fatalf("decoded value is %T, want map", value)
	}
	if m["analysis_period"] != "March" {
		t.Fatalf("analysis_period = %v", m["analysis_period"])
	}
}

func TestCompactFallsBackToEmptyObject(t *testing.T) {
	if got := Compact(make(chan int)); got != "{}" {
		t.Fatalf("Compact on unmarshalable value = %q, want {}", got)
	}
}
