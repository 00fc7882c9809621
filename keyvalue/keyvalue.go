package keyvalue

// T is a key value pair attached to diagnostic context.
type T struct {
	Key   string
	Value string
}

// KV returns a T.
func KV(k, v string) T {
	return T{Key: k, Value: v}
}
