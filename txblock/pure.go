package txblock

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/fardream/go-bcs/bcs"
	"github.com/holiman/uint256"
	"github.com/mysticon-legends/setup/interfaces"
)

var (
	ErrUnsupportedPureType = errors.New("unsupported pure argument type")
	ErrOverflow            = errors.New("value does not fit target width")
)

var addressType = interfaces.NormalizedType{Primitive: "Address"}

var uintWidths = map[string]uint64{
	"U8":  math.MaxUint8,
	"U16": math.MaxUint16,
	"U32": math.MaxUint32,
	"U64": math.MaxUint64,
}

// EncodePure BCS-encodes value as the Move type t.
func EncodePure(value any, t interfaces.NormalizedType) ([]byte, error) {
	switch {
	case t.Primitive != "":
		return encodePrimitive(value, t.Primitive)
	case t.Vector != nil:
		return encodeVector(value, *t.Vector)
	case t.Struct != nil:
		return encodeStruct(value, t)
	case t.TypeParameter != nil:
		return nil, fmt.Errorf("%w: generic parameter T%d", ErrUnsupportedPureType, *t.TypeParameter)
	default:
		return nil, fmt.Errorf("%w: reference parameters cannot take pure values", ErrUnsupportedPureType)
	}
}

func encodePrimitive(v any, primitive string) ([]byte, error) {
	if limit, ok := uintWidths[primitive]; ok {
		n, err := toUint64(v)
		if err != nil {
			return nil, err
		}
		if n > limit {
			return nil, fmt.Errorf("%w: %d exceeds %s", ErrOverflow, n, primitive)
		}
		switch primitive {
		case "U8":
			return bcs.Marshal(uint8(n))
		case "U16":
			return bcs.Marshal(uint16(n))
		case "U32":
			return bcs.Marshal(uint32(n))
		default:
			return bcs.Marshal(n)
		}
	}

	switch primitive {
	case "Bool":
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %T for bool", ErrUnsupportedPureType, v)
		}
		return bcs.Marshal(b)
	case "U128":
		n, err := toUint256(v)
		if err != nil {
			return nil, err
		}
		if n.BitLen() > 128 {
			return nil, fmt.Errorf("%w: %s exceeds U128", ErrOverflow, n.Dec())
		}
		full := littleEndian(n)
		var le [16]byte
		copy(le[:], full[:16])
		return bcs.Marshal(le)
	case "U256":
		n, err := toUint256(v)
		if err != nil {
			return nil, err
		}
		return bcs.Marshal(littleEndian(n))
	case "Address":
		addr, err := toAddress(v)
		if err != nil {
			return nil, err
		}
		return bcs.Marshal([32]byte(addr))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPureType, primitive)
	}
}

func littleEndian(n *uint256.Int) [32]byte {
	be := n.Bytes32()
	var le [32]byte
	for i := range be {
		le[i] = be[len(be)-1-i]
	}
	return le
}

func encodeVector(v any, elem interfaces.NormalizedType) ([]byte, error) {
	if elem.Primitive == "U8" {
		switch raw := v.(type) {
		case string:
			return bcs.Marshal([]byte(raw))
		case []byte:
			return bcs.Marshal(raw)
		}
	}
	if strs, ok := v.([]string); ok && (elem.IsStruct("0x1", "string", "String") || elem.IsStruct("0x1", "ascii", "String")) {
		for i, s := range strs {
			if err := checkString(s, elem.Struct.Module); err != nil {
				return nil, fmt.Errorf("vector element %d: %w", i, err)
			}
		}
		return bcs.Marshal(strs)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %T for vector", ErrUnsupportedPureType, v)
	}

	out := bcs.ULEB128Encode(uint64(rv.Len()))
	for i := 0; i < rv.Len(); i++ {
		item, err := EncodePure(rv.Index(i).Interface(), elem)
		if err != nil {
			return nil, fmt.Errorf("vector element %d: %w", i, err)
		}
		out = append(out, item...)
	}
	return out, nil
}

func checkString(s, module string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: invalid utf-8 string", ErrUnsupportedPureType)
	}
	if module == "ascii" {
		for i := 0; i < len(s); i++ {
			if s[i] > 0x7f {
				return fmt.Errorf("%w: non-ascii string", ErrUnsupportedPureType)
			}
		}
	}
	return nil
}

func encodeStruct(v any, t interfaces.NormalizedType) ([]byte, error) {
	switch {
	case t.IsStruct("0x1", "string", "String"), t.IsStruct("0x1", "ascii", "String"):
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %T for string", ErrUnsupportedPureType, v)
		}
		if err := checkString(s, t.Struct.Module); err != nil {
			return nil, err
		}
		return bcs.Marshal(s)
	case t.IsStruct("0x2", "object", "ID"):
		addr, err := toAddress(v)
		if err != nil {
			return nil, err
		}
		return bcs.Marshal([32]byte(addr))
	case t.IsStruct("0x1", "option", "Option"):
		if len(t.Struct.TypeArguments) != 1 {
			return nil, fmt.Errorf("%w: option without type argument", ErrUnsupportedPureType)
		}
		rv := reflect.ValueOf(v)
		if v == nil || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
			return bcs.ULEB128Encode(uint64(0)), nil
		}
		if rv.Kind() == reflect.Pointer {
			v = rv.Elem().Interface()
		}
		inner, err := EncodePure(v, t.Struct.TypeArguments[0])
		if err != nil {
			return nil, err
		}
		return append(bcs.ULEB128Encode(uint64(1)), inner...), nil
	default:
		return nil, fmt.Errorf("%w: struct %s::%s::%s", ErrUnsupportedPureType, t.Struct.Address, t.Struct.Module, t.Struct.Name)
	}
}

func toUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case interfaces.Uint64String:
		return uint64(n), nil
	case int, int8, int16, int32, int64:
		i := reflect.ValueOf(n).Int()
		if i < 0 {
			return 0, fmt.Errorf("%w: negative value %d", ErrUnsupportedPureType, i)
		}
		return uint64(i), nil
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an unsigned integer", ErrUnsupportedPureType, n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%w: %T for integer", ErrUnsupportedPureType, v)
	}
}

func toUint256(v any) (*uint256.Int, error) {
	switch n := v.(type) {
	case *uint256.Int:
		return n, nil
	case string:
		parsed, err := uint256.FromDecimal(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedPureType, n, err)
		}
		return parsed, nil
	default:
		small, err := toUint64(v)
		if err != nil {
			return nil, err
		}
		return uint256.NewInt(small), nil
	}
}

func toAddress(v any) (interfaces.SuiAddress, error) {
	switch a := v.(type) {
	case interfaces.SuiAddress:
		return a, nil
	case string:
		return interfaces.NewSuiAddressFromHex(a)
	default:
		return interfaces.SuiAddress{}, fmt.Errorf("%w: %T for address", ErrUnsupportedPureType, v)
	}
}
