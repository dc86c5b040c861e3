package conversion

import (
	"mapper-planner/internal/model"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum classifies the concrete types built-in conversions are defined for.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // user declared enum type

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

// Bits returns the bit size used for strconv parsing.
func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only number kinds has meaningful bits amount, but requested for: " + k.String())
	case KindInt, KindUint:
		return 0 // strconv treats 0 as the platform int size
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}

var kindIDs = map[KindEnum]model.TypeID{
	KindInt:      {Name: "int"},
	KindInt8:     {Name: "int8"},
	KindInt16:    {Name: "int16"},
	KindInt32:    {Name: "int32"},
	KindInt64:    {Name: "int64"},
	KindUint:     {Name: "uint"},
	KindUint8:    {Name: "uint8"},
	KindUint16:   {Name: "uint16"},
	KindUint32:   {Name: "uint32"},
	KindUint64:   {Name: "uint64"},
	KindFloat32:  {Name: "float32"},
	KindFloat64:  {Name: "float64"},
	KindBool:     {Name: "bool"},
	KindString:   {Name: "string"},
	KindTime:     model.TimeID,
	KindDuration: model.DurationID,
}

// TypeID returns the concrete type a kind stands for; enums have none.
func (k KindEnum) TypeID() (model.TypeID, bool) {
	id, ok := kindIDs[k]
	return id, ok
}

// KindOf classifies a type descriptor, returning the zero KindEnum for types no
// built-in conversion applies to.
func KindOf(t *model.Type) KindEnum {
	if t == nil || t.IsGeneric() {
		return 0
	}

	if t.Kind == model.TypeKindEnum {
		return KindPrimitiveEnum
	}

	id := t.ID
	switch id.Name {
	case "byte":
		id.Name = "uint8"
	case "rune":
		id.Name = "int32"
	}

	for k, kid := range kindIDs {
		if kid == id {
			return k
		}
	}

	return 0
}
