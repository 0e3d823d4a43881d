package canonical

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"testing"
	"time"
)

func TestEncodeSnapshotVector(t *testing.T) {
	encoded, err := EncodeAny(map[string]any{"nodes": 427000, "edges": 7240000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(encoded) != `{"edges":7240000,"nodes":427000}` {
		t.Fatalf("unexpected canonical encoding: %s", encoded)
	}
}

func TestEncodeIgnoresInsertionOrder(t *testing.T) {
	first, err := Parse([]byte(`{"b":{"y":2,"x":1},"a":[1,{"d":4,"c":3}]}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	second, err := Parse([]byte(`{"a":[1,{"c":3,"d":4}],"b":{"x":1,"y":2}}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	firstBytes, err := Encode(first)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	secondBytes, err := Encode(second)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if string(firstBytes) != string(secondBytes) {
		t.Fatalf("expected identical encodings, got %s and %s", firstBytes, secondBytes)
	}
	if string(firstBytes) != `{"a":[1,{"c":3,"d":4}],"b":{"x":1,"y":2}}` {
		t.Fatalf("unexpected encoding: %s", firstBytes)
	}
}

func TestEncodeMatchesReferenceFormatting(t *testing.T) {
	input := map[string]any{
		"b": []any{1.0, 1e16, 1e-05, 0.0001, math.Copysign(0, -1), 1.5e300, "é😀<>/\u0001"},
		"a": nil,
		"é": true,
	}

	encoded, err := EncodeAny(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"a":null,"b":[1.0,1e+16,1e-05,0.0001,-0.0,1.5e+300,"\u00e9\ud83d\ude00<>/\u0001"],"\u00e9":true}`
	if string(encoded) != expected {
		t.Fatalf("unexpected encoding:\n got %s\nwant %s", encoded, expected)
	}
}

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		input    float64
		expected string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2.5, "-2.5"},
		{0.1, "0.1"},
		{123.456, "123.456"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1.25e17, "1.25e+17"},
		{0.00012, "0.00012"},
		{0.000012, "1.2e-05"},
		{5e-324, "5e-324"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
	}

	for _, tc := range cases {
		result, err := formatFloat(tc.input, 64)
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", tc.input, err)
		}
		if result != tc.expected {
			t.Fatalf("expected %q for %v, got %q", tc.expected, tc.input, result)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		literal  string
		expected string
	}{
		{"427000", "427000"},
		{"-0", "0"},
		{"1.50", "1.5"},
		{"1E2", "100.0"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
		{"-17", "-17"},
	}

	for _, tc := range cases {
		value, err := Number(tc.literal)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.literal, err)
		}
		text, ok := value.NumberText()
		if !ok || text != tc.expected {
			t.Fatalf("expected %q for %q, got %q", tc.expected, tc.literal, text)
		}
	}
}

func TestNumberLiteralOutOfRange(t *testing.T) {
	_, err := Number("1e400")
	var encodingErr *EncodingError
	if !errors.As(err, &encodingErr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
}

func TestEncodeRejectsNaN(t *testing.T) {
	_, err := EncodeAny(map[string]any{"score": math.NaN()})
	var encodingErr *EncodingError
	if !errors.As(err, &encodingErr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
	if encodingErr.Path != `$["score"]` {
		t.Fatalf("unexpected error path %q", encodingErr.Path)
	}
}

func TestEncodeRejectsInfinity(t *testing.T) {
	if _, err := Float(math.Inf(1)); err == nil {
		t.Fatal("expected error for +Inf")
	}
	if _, err := EncodeAny([]any{math.Inf(-1)}); err == nil {
		t.Fatal("expected error for -Inf")
	}
}

func TestEncodeRejectsCycles(t *testing.T) {
	record := map[string]any{"name": "loop"}
	record["self"] = record

	_, err := EncodeAny(record)
	var encodingErr *EncodingError
	if !errors.As(err, &encodingErr) {
		t.Fatalf("expected EncodingError for cyclic map, got %v", err)
	}

	items := make([]any, 1)
	items[0] = items
	if _, err := EncodeAny(items); err == nil {
		t.Fatal("expected error for cyclic slice")
	}
}

func TestEncodeAllowsSharedAcyclicReferences(t *testing.T) {
	shared := map[string]any{"id": 1}
	encoded, err := EncodeAny(map[string]any{"left": shared, "right": shared})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(encoded) != `{"left":{"id":1},"right":{"id":1}}` {
		t.Fatalf("unexpected encoding: %s", encoded)
	}
}

func TestEncodeRejectsUnsupportedKinds(t *testing.T) {
	cases := []any{
		make(chan int),
		func() {},
		complex(1, 2),
	}
	for _, input := range cases {
		if _, err := EncodeAny(input); err == nil {
			t.Fatalf("expected error for %T", input)
		}
	}
}

func TestEncodeRejectsInvalidUTF8(t *testing.T) {
	if _, err := Encode(String("\xff")); err == nil {
		t.Fatal("expected error for invalid UTF-8 string")
	}
	if _, err := EncodeAny(map[string]any{"\xfe": 1}); err == nil {
		t.Fatal("expected error for invalid UTF-8 key")
	}
}

func TestEncodeStructsThroughJSONTags(t *testing.T) {
	type trade struct {
		Ticker string  `json:"ticker"`
		Amount float64 `json:"amount"`
		Shares int     `json:"shares"`
	}

	encoded, err := EncodeAny(trade{Ticker: "NVDA", Amount: 15000.5, Shares: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(encoded) != `{"amount":15000.5,"shares":40,"ticker":"NVDA"}` {
		t.Fatalf("unexpected encoding: %s", encoded)
	}
}

func TestEncodeStringEscapes(t *testing.T) {
	encoded, err := Encode(String("quote\" slash\\ nl\n tab\t del\x7f"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `"quote\" slash\\ nl\n tab\t del\u007f"`
	if string(encoded) != expected {
		t.Fatalf("expected %s, got %s", expected, encoded)
	}
}

func TestParseRejectsTrailingData(t *testing.T) {
	if _, err := Parse([]byte(`{"a":1} {"b":2}`)); err == nil {
		t.Fatal("expected error for trailing data")
	}
	if _, err := Parse([]byte(`{"a":`)); err == nil {
		t.Fatal("expected error for truncated input")
	}
}

func TestValueAccessors(t *testing.T) {
	value := Mapping(map[string]Value{
		"b": Sequence(Int(1), Bool(true)),
		"a": String("x"),
	})

	keys := value.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys: %v", keys)
	}
	field, ok := value.Field("b")
	if !ok || field.Kind() != KindSequence || len(field.Items()) != 2 {
		t.Fatalf("unexpected field b: %+v", field)
	}
	text, ok := Value{}.Text()
	if ok || text != "" {
		t.Fatal("zero value must not be a string")
	}
	if (Value{}).Kind() != KindNull {
		t.Fatal("zero value must be null")
	}
}

func TestValueMarshalJSON(t *testing.T) {
	payload, err := json.Marshal(map[string]any{"record": Mapping(map[string]Value{"z": Int(1), "a": BigInt(big.NewInt(2))})})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != `{"record":{"a":2,"z":1}}` {
		t.Fatalf("unexpected JSON: %s", payload)
	}
}

func TestEncodeFloatsIndependentOfContainerType(t *testing.T) {
	type priced struct {
		Price float64 `json:"price"`
	}
	type amount float64

	inputs := map[string]any{
		"generic map": map[string]any{"price": 1.0},
		"typed map":   map[string]float64{"price": 1},
		"struct":      priced{Price: 1},
		"pointer":     &priced{Price: 1},
		"named float": map[string]amount{"price": 1},
		"float32":     map[string]float32{"price": 1},
	}
	for name, input := range inputs {
		encoded, err := EncodeAny(input)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if string(encoded) != `{"price":1.0}` {
			t.Fatalf("%s: expected {\"price\":1.0}, got %s", name, encoded)
		}
	}

	encoded, err := EncodeAny([]float64{1, 2.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(encoded) != `[1.0,2.5]` {
		t.Fatalf("unexpected typed slice encoding: %s", encoded)
	}
}

func TestEncodeStructFieldRules(t *testing.T) {
	type base struct {
		ID   int    `json:"id"`
		Kind string `json:"kind"`
	}
	type record struct {
		base
		Kind    string         `json:"kind"`
		Note    string         `json:"note,omitempty"`
		Count   int64          `json:"count,string"`
		Skipped string         `json:"-"`
		Labels  map[int]string `json:"labels"`
		When    time.Time      `json:"when"`
		Raw     []byte         `json:"raw"`
		Extra   map[string]any `json:"extra"`
		hidden  string
	}

	encoded, err := EncodeAny(record{
		base:    base{ID: 7, Kind: "inner"},
		Kind:    "outer",
		Count:   3,
		Skipped: "x",
		Labels:  map[int]string{2: "b", 1: "a"},
		When:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Raw:     []byte("hi"),
		hidden:  "y",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `{"count":"3","extra":null,"id":7,"kind":"outer","labels":{"1":"a","2":"b"},"raw":"aGk=","when":"2026-01-02T03:04:05Z"}`
	if string(encoded) != expected {
		t.Fatalf("expected %s, got %s", expected, encoded)
	}
}

func TestEncodeRejectsCyclicPointers(t *testing.T) {
	type node struct {
		Name string `json:"name"`
		Next *node  `json:"next"`
	}
	loop := &node{Name: "a"}
	loop.Next = loop

	var encodingErr *EncodingError
	if _, err := EncodeAny(loop); !errors.As(err, &encodingErr) {
		t.Fatalf("expected EncodingError for cyclic pointer, got %v", err)
	}
}
