package cache

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind tags the payload stored for a cached value.
type Kind byte

const (
	KindEmpty Kind = iota + 1
	KindInt
	KindFloat
	KindBool
	KindString
	KindBytes
	KindBlob
)

var (
	errEmptyPayload = errors.New("cache: empty payload")
	errKindMismatch = errors.New("cache: stored kind does not match result type")
)

func encode[R any](v Option[R]) ([]byte, error) {
	val, ok := v.Get()
	if !ok {
		return []byte{byte(KindEmpty)}, nil
	}

	switch x := any(val).(type) {
	case int:
		return strconv.AppendInt([]byte{byte(KindInt)}, int64(x), 10), nil
	case int32:
		return strconv.AppendInt([]byte{byte(KindInt)}, int64(x), 10), nil
	case int64:
		return strconv.AppendInt([]byte{byte(KindInt)}, x, 10), nil
	case float32:
		return strconv.AppendFloat([]byte{byte(KindFloat)}, float64(x), 'g', -1, 32), nil
	case float64:
		return strconv.AppendFloat([]byte{byte(KindFloat)}, x, 'g', -1, 64), nil
	case bool:
		return strconv.AppendBool([]byte{byte(KindBool)}, x), nil
	case string:
		return append([]byte{byte(KindString)}, x...), nil
	case []byte:
		return append([]byte{byte(KindBytes)}, x...), nil
	default:
		blob, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("cache: encode %T: %w", val, err)
		}
		return append([]byte{byte(KindBlob)}, blob...), nil
	}
}

func decode[R any](data []byte) (Option[R], error) {
	if len(data) == 0 {
		return None[R](), errEmptyPayload
	}

	var out R
	kind, payload := Kind(data[0]), data[1:]
	switch kind {
	case KindEmpty:
		return None[R](), nil
	case KindInt:
		n, err := strconv.ParseInt(string(payload), 10, 64)
		if err != nil {
			return None[R](), err
		}
		switch p := any(&out).(type) {
		case *int:
			*p = int(n)
		case *int32:
			*p = int32(n)
		case *int64:
			*p = n
		default:
			return None[R](), errKindMismatch
		}
	case KindFloat:
		f, err := strconv.ParseFloat(string(payload), 64)
		if err != nil {
			return None[R](), err
		}
		switch p := any(&out).(type) {
		case *float32:
			*p = float32(f)
		case *float64:
			*p = f
		default:
			return None[R](), errKindMismatch
		}
	case KindBool:
		b, err := strconv.ParseBool(string(payload))
		if err != nil {
			return None[R](), err
		}
		p, ok := any(&out).(*bool)
		if !ok {
			return None[R](), errKindMismatch
		}
		*p = b
	case KindString:
		p, ok := any(&out).(*string)
		if !ok {
			return None[R](), errKindMismatch
		}
		*p = string(payload)
	case KindBytes:
		p, ok := any(&out).(*[]byte)
		if !ok {
			return None[R](), errKindMismatch
		}
		*p = append([]byte(nil), payload...)
	case KindBlob:
		if err := json.Unmarshal(payload, &out); err != nil {
			return None[R](), err
		}
	default:
		return None[R](), fmt.Errorf("cache: unknown kind %d", kind)
	}

	return Some(out), nil
}

// rawValue hands back an undecodable payload unchanged when the result type can hold it.
func rawValue[R any](data []byte) (Option[R], bool) {
	var out R
	switch p := any(&out).(type) {
	case *string:
		*p = string(data)
	case *[]byte:
		*p = append([]byte(nil), data...)
	default:
		return None[R](), false
	}
	return Some(out), true
}
