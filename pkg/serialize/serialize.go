package serialize

import (
	"encoding/json"
	"net/netip"
	"strconv"
)

// Object is the wire representation of a node: a JSON object decoded into
// a Go map.
type Object = map[string]any

// AsObject coerces a wire value to an Object.
func AsObject(v any) (Object, error) {
	o, ok := v.(map[string]any)
	if !ok {
		return nil, mismatch("", "object", v)
	}
	return o, nil
}

// AsString coerces a wire value to a string.
func AsString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", mismatch("", "string", v)
	}
	return s, nil
}

// AsInt coerces a wire value to an int. JSON numbers arrive as float64;
// values produced by Encode arrive as Go integers.
func AsInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, mismatch("", "int", v)
		}
		return int(i), nil
	case string:
		// the engine occasionally renders numeric fields as strings
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, mismatch("", "int", v)
		}
		return i, nil
	default:
		return 0, mismatch("", "int", v)
	}
}

// AsBool coerces a wire value to a bool.
func AsBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, mismatch("", "bool", v)
	}
	return b, nil
}

// AsAddr coerces a wire value to an IP address.
func AsAddr(v any) (netip.Addr, error) {
	switch a := v.(type) {
	case netip.Addr:
		return a, nil
	case string:
		addr, err := netip.ParseAddr(a)
		if err != nil {
			return netip.Addr{}, mismatch("", "ip address", v)
		}
		return addr, nil
	default:
		return netip.Addr{}, mismatch("", "ip address", v)
	}
}

// AsPrefix coerces a wire value to an IP prefix in "addr/bits" form.
func AsPrefix(v any) (netip.Prefix, error) {
	switch p := v.(type) {
	case netip.Prefix:
		return p, nil
	case string:
		pfx, err := netip.ParsePrefix(p)
		if err != nil {
			// a bare address denotes a full-length prefix
			addr, aerr := netip.ParseAddr(p)
			if aerr != nil {
				return netip.Prefix{}, mismatch("", "ip prefix", v)
			}
			return netip.PrefixFrom(addr, addr.BitLen()), nil
		}
		return pfx, nil
	default:
		return netip.Prefix{}, mismatch("", "ip prefix", v)
	}
}

// Raw returns the uninterpreted wire value of a required field.
func Raw(o Object, key string) (any, error) {
	v, ok := o[key]
	if !ok {
		return nil, missing(key)
	}
	return v, nil
}

// RawOr returns the uninterpreted wire value of a field, or def when the
// field is absent.
func RawOr(o Object, key string, def any) any {
	if v, ok := o[key]; ok && v != nil {
		return v
	}
	return def
}

// Obj decodes a required nested object field.
func Obj(o Object, key string) (Object, error) {
	v, err := Raw(o, key)
	if err != nil {
		return nil, err
	}
	n, err := AsObject(v)
	if err != nil {
		return nil, in(key, err)
	}
	return n, nil
}

// String decodes a required string field.
func String(o Object, key string) (string, error) {
	v, err := Raw(o, key)
	if err != nil {
		return "", err
	}
	s, err := AsString(v)
	if err != nil {
		return "", in(key, err)
	}
	return s, nil
}

// StringOr decodes a string field, substituting def when absent.
func StringOr(o Object, key, def string) (string, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	s, err := AsString(v)
	if err != nil {
		return "", in(key, err)
	}
	return s, nil
}

// Int decodes a required integer field.
func Int(o Object, key string) (int, error) {
	v, err := Raw(o, key)
	if err != nil {
		return 0, err
	}
	n, err := AsInt(v)
	if err != nil {
		return 0, in(key, err)
	}
	return n, nil
}

// IntOr decodes an integer field, substituting def when absent.
func IntOr(o Object, key string, def int) (int, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	n, err := AsInt(v)
	if err != nil {
		return 0, in(key, err)
	}
	return n, nil
}

// OptInt decodes an optional integer field as a pointer; absent, null and
// empty-string values yield nil.
func OptInt(o Object, key string) (*int, error) {
	v, ok := o[key]
	if !ok || v == nil || v == "" {
		return nil, nil
	}
	n, err := AsInt(v)
	if err != nil {
		return nil, in(key, err)
	}
	return &n, nil
}

// Bool decodes a required boolean field.
func Bool(o Object, key string) (bool, error) {
	v, err := Raw(o, key)
	if err != nil {
		return false, err
	}
	b, err := AsBool(v)
	if err != nil {
		return false, in(key, err)
	}
	return b, nil
}

// BoolOr decodes a boolean field, substituting def when absent.
func BoolOr(o Object, key string, def bool) (bool, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	b, err := AsBool(v)
	if err != nil {
		return false, in(key, err)
	}
	return b, nil
}

// Addr decodes a required IP address field.
func Addr(o Object, key string) (netip.Addr, error) {
	v, err := Raw(o, key)
	if err != nil {
		return netip.Addr{}, err
	}
	a, err := AsAddr(v)
	if err != nil {
		return netip.Addr{}, in(key, err)
	}
	return a, nil
}

// Prefix decodes a required IP prefix field.
func Prefix(o Object, key string) (netip.Prefix, error) {
	v, err := Raw(o, key)
	if err != nil {
		return netip.Prefix{}, err
	}
	p, err := AsPrefix(v)
	if err != nil {
		return netip.Prefix{}, in(key, err)
	}
	return p, nil
}

// List decodes a required sequence field element-wise, preserving order.
func List[T any](o Object, key string, elem func(any) (T, error)) ([]T, error) {
	v, err := Raw(o, key)
	if err != nil {
		return nil, err
	}
	return listOf(key, v, elem)
}

// ListOr decodes a sequence field element-wise, yielding an empty slice
// when the field is absent.
func ListOr[T any](o Object, key string, elem func(any) (T, error)) ([]T, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return []T{}, nil
	}
	return listOf(key, v, elem)
}

func listOf[T any](key string, v any, elem func(any) (T, error)) ([]T, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, in(key, mismatch("", "sequence", v))
	}
	out := make([]T, 0, len(raw))
	for _, e := range raw {
		t, err := elem(e)
		if err != nil {
			return nil, in(key, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// MapOf decodes a required mapping field with string keys, applying elem
// to every value. Ordering is not significant.
func MapOf[V any](o Object, key string, elem func(any) (V, error)) (map[string]V, error) {
	v, err := Raw(o, key)
	if err != nil {
		return nil, err
	}
	raw, err := AsObject(v)
	if err != nil {
		return nil, in(key, err)
	}
	out := make(map[string]V, len(raw))
	for k, e := range raw {
		t, err := elem(e)
		if err != nil {
			return nil, in(key, err)
		}
		out[k] = t
	}
	return out, nil
}

// AddrMapOf decodes a required mapping field whose keys are IP addresses.
func AddrMapOf[V any](o Object, key string, elem func(any) (V, error)) (map[netip.Addr]V, error) {
	v, err := Raw(o, key)
	if err != nil {
		return nil, err
	}
	raw, err := AsObject(v)
	if err != nil {
		return nil, in(key, err)
	}
	out := make(map[netip.Addr]V, len(raw))
	for k, e := range raw {
		addr, err := netip.ParseAddr(k)
		if err != nil {
			return nil, in(key, mismatch("", "ip address key", k))
		}
		t, err := elem(e)
		if err != nil {
			return nil, in(key, err)
		}
		out[addr] = t
	}
	return out, nil
}

// Strings decodes a required sequence of strings.
func Strings(o Object, key string) ([]string, error) {
	return List(o, key, AsString)
}

// StringsOr decodes a sequence of strings, empty when absent.
func StringsOr(o Object, key string) ([]string, error) {
	return ListOr(o, key, AsString)
}

// EncodeList encodes a slice of nodes with the given element encoder.
func EncodeList[T any](ts []T, elem func(T) any) []any {
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = elem(t)
	}
	return out
}
