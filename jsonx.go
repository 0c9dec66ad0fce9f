package main

import (
	"github.com/bytedance/sonic"
)

// fastJSONMarshal encodes v as JSON using the Sonic encoder. Benchmark sets
// are small, but sharing one codec choice keeps export/import symmetric.
func fastJSONMarshal(v interface{}) ([]byte, error) {
	return sonic.Marshal(v)
}

// fastJSONMarshalIndent is fastJSONMarshal with two-space indentation, used
// for files a human may edit (benchmark exports).
func fastJSONMarshalIndent(v interface{}) ([]byte, error) {
	return sonic.MarshalIndent(v, "", "  ")
}

// fastJSONUnmarshal decodes JSON data into v using Sonic. It is a drop-in
// replacement for encoding/json.Unmarshal for typical Go structs.
func fastJSONUnmarshal(data []byte, v interface{}) error {
	return sonic.Unmarshal(data, v)
}
