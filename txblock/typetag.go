package txblock

import (
	"fmt"
	"strings"

	"github.com/mysticon-legends/setup/interfaces"
)

// TypeTagKind follows the BCS variant order of Move type tags.
type TypeTagKind uint8

const (
	TagBool TypeTagKind = iota
	TagU8
	TagU64
	TagU128
	TagAddress
	TagSigner
	TagVector
	TagStruct
	TagU16
	TagU32
	TagU256
)

var primitiveTags = map[string]TypeTagKind{
	"bool":    TagBool,
	"u8":      TagU8,
	"u16":     TagU16,
	"u32":     TagU32,
	"u64":     TagU64,
	"u128":    TagU128,
	"u256":    TagU256,
	"address": TagAddress,
	"signer":  TagSigner,
}

// StructTag names a Move struct type with its type parameters.
type StructTag struct {
	Address    interfaces.SuiAddress
	Module     string
	Name       string
	TypeParams []TypeTag
}

// TypeTag is a Move type argument.
type TypeTag struct {
	Kind   TypeTagKind
	Vector *TypeTag
	Struct *StructTag
}

// ParseTypeTag parses "u64", "vector<u8>" or "0x2::coin::Coin<0x2::sui::SUI>".
func ParseTypeTag(s string) (TypeTag, error) {
	tag, rest, err := parseTypeTag(strings.TrimSpace(s))
	if err != nil {
		return TypeTag{}, fmt.Errorf("invalid type tag %q: %w", s, err)
	}
	if strings.TrimSpace(rest) != "" {
		return TypeTag{}, fmt.Errorf("invalid type tag %q: trailing %q", s, rest)
	}
	return tag, nil
}

// MustParseTypeTag is ParseTypeTag for constants.
func MustParseTypeTag(s string) TypeTag {
	tag, err := ParseTypeTag(s)
	if err != nil {
		panic(err)
	}
	return tag
}

func parseTypeTag(s string) (TypeTag, string, error) {
	s = strings.TrimLeft(s, " ")
	end := strings.IndexAny(s, "<>, ")
	head := s
	if end >= 0 {
		head = s[:end]
	}
	rest := s[len(head):]

	if kind, ok := primitiveTags[head]; ok {
		return TypeTag{Kind: kind}, rest, nil
	}

	var params []TypeTag
	if strings.HasPrefix(rest, "<") {
		rest = rest[1:]
		for {
			param, r, err := parseTypeTag(rest)
			if err != nil {
				return TypeTag{}, "", err
			}
			params = append(params, param)
			r = strings.TrimLeft(r, " ")
			if strings.HasPrefix(r, ",") {
				rest = r[1:]
				continue
			}
			if !strings.HasPrefix(r, ">") {
				return TypeTag{}, "", fmt.Errorf("unterminated type parameters")
			}
			rest = r[1:]
			break
		}
	}

	if head == "vector" {
		if len(params) != 1 {
			return TypeTag{}, "", fmt.Errorf("vector takes exactly one type parameter")
		}
		return TypeTag{Kind: TagVector, Vector: &params[0]}, rest, nil
	}

	parts := strings.Split(head, "::")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return TypeTag{}, "", fmt.Errorf("expected address::module::name, got %q", head)
	}
	addr, err := interfaces.NewSuiAddressFromHex(parts[0])
	if err != nil {
		return TypeTag{}, "", err
	}

	return TypeTag{Kind: TagStruct, Struct: &StructTag{
		Address:    addr,
		Module:     parts[1],
		Name:       parts[2],
		TypeParams: params,
	}}, rest, nil
}

func (t TypeTag) String() string {
	switch t.Kind {
	case TagVector:
		return "vector<" + t.Vector.String() + ">"
	case TagStruct:
		s := fmt.Sprintf("%s::%s::%s", t.Struct.Address, t.Struct.Module, t.Struct.Name)
		if len(t.Struct.TypeParams) > 0 {
			params := make([]string, 0, len(t.Struct.TypeParams))
			for _, p := range t.Struct.TypeParams {
				params = append(params, p.String())
			}
			s += "<" + strings.Join(params, ", ") + ">"
		}
		return s
	}
	for name, kind := range primitiveTags {
		if kind == t.Kind {
			return name
		}
	}
	return "unknown"
}

func (t TypeTag) wire() wireTypeTag {
	switch t.Kind {
	case TagVector:
		inner := t.Vector.wire()
		return wireTypeTag{Vector: &inner}
	case TagStruct:
		params := make([]wireTypeTag, 0, len(t.Struct.TypeParams))
		for _, p := range t.Struct.TypeParams {
			params = append(params, p.wire())
		}
		return wireTypeTag{Struct: &wireStructTag{
			Address:    t.Struct.Address,
			Module:     t.Struct.Module,
			Name:       t.Struct.Name,
			TypeParams: params,
		}}
	}

	var w wireTypeTag
	switch t.Kind {
	case TagBool:
		w.Bool = &unit{}
	case TagU8:
		w.U8 = &unit{}
	case TagU16:
		w.U16 = &unit{}
	case TagU32:
		w.U32 = &unit{}
	case TagU64:
		w.U64 = &unit{}
	case TagU128:
		w.U128 = &unit{}
	case TagU256:
		w.U256 = &unit{}
	case TagAddress:
		w.Address = &unit{}
	case TagSigner:
		w.Signer = &unit{}
	}
	return w
}
