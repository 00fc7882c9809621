// Package flatten turns one nested JSON report into newline delimited
// records, one per combination of array elements.
package flatten

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// Multiply expands obj into one record per array element.
//
// Arrays found at the top level are expanded first, each element replacing
// the array in a copy of obj that is expanded again. Without top level
// arrays, nested objects are expanded with one less level of depth and put
// back under their key. A depth of zero returns obj unchanged; a negative
// depth never stops descending. An empty array yields no record.
func Multiply(obj map[string]interface{}, depth int) []map[string]interface{} {
	if depth == 0 {
		return []map[string]interface{}{obj}
	}

	var arrays, objects []string
	for _, k := range sortedKeys(obj) {
		switch obj[k].(type) {
		case []interface{}:
			arrays = append(arrays, k)
		case map[string]interface{}:
			objects = append(objects, k)
		}
	}

	results := []map[string]interface{}{}
	switch {
	case len(arrays) > 0:
		for _, k := range arrays {
			for _, el := range obj[k].([]interface{}) {
				results = append(results, Multiply(with(obj, k, el), depth)...)
			}
		}
	case len(objects) > 0:
		for _, k := range objects {
			for _, sub := range Multiply(obj[k].(map[string]interface{}), depth-1) {
				results = append(results, with(obj, k, sub))
			}
		}
	default:
		results = append(results, obj)
	}
	return results
}

// with returns a copy of obj with k set to v. Nested values are shared,
// Multiply never modifies a map it did not create.
func with(obj map[string]interface{}, k string, v interface{}) map[string]interface{} {
	n := make(map[string]interface{}, len(obj))
	for key, val := range obj {
		n[key] = val
	}
	n[k] = v
	return n
}

func sortedKeys(obj map[string]interface{}) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode reads one JSON object, keeping numbers as written.
func Decode(data []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "failed to parse input JSON")
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.New("input must be a JSON object")
	}
	return obj, nil
}

// Encode writes records as JSON lines joined by a newline, without a
// trailing one.
func Encode(records []map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return nil, errors.Wrap(err, "failed to encode record")
		}
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// File multiplies the object in the input file and writes the records to
// the output file. It returns the number of records written.
func File(in, out string, depth int) (int, error) {
	data, err := os.ReadFile(in)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read %q", in)
	}
	obj, err := Decode(data)
	if err != nil {
		return 0, err
	}
	records := Multiply(obj, depth)
	b, err := Encode(records)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(out, b, 0644); err != nil {
		return 0, errors.Wrapf(err, "failed to write %q", out)
	}
	return len(records), nil
}
