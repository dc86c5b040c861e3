package conversion

import (
	"fmt"
	"strings"
)

// CategoryEnum is a bit set of built-in conversion families.
type CategoryEnum int

// ConversionPair is an ordered pair of kinds.
type ConversionPair struct {
	From, To KindEnum
}

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss
	CategoryTextNumber                            // int, uint, float <-> string
	CategoryNumericBool                           // int <-> bool: 0, 1
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false
	CategoryDatetime                              // string(RFC3339Nano or format hint) <-> time.Time
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time
	CategoryDuration                              // string(2h45m) <-> time.Duration
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration
	CategorySeconds                               // float(seconds) <-> time.Duration
	CategoryEnumString                            // string <-> enum, enum <-> enum by constant name

	CategoryAll  = (1 << iota) - 1 // all categories combined
	CategoryNone = 0               // no categories selected

	// CategoryDefault selects the families that never reinterpret a value's meaning.
	CategoryDefault = CategorySafeNumber | CategoryUnsafeNumber | CategoryTextNumber |
		CategoryTextualBool | CategoryDatetime | CategoryDuration | CategoryEnumString
)

var categoryNames = map[CategoryEnum]string{
	CategorySafeNumber:   "safe_number",
	CategoryUnsafeNumber: "unsafe_number",
	CategoryTextNumber:   "text_number",
	CategoryNumericBool:  "numeric_bool",
	CategoryTextualBool:  "textual_bool",
	CategoryDatetime:     "datetime",
	CategoryTimestamp:    "timestamp",
	CategoryDuration:     "duration",
	CategoryNanoseconds:  "nanoseconds",
	CategorySeconds:      "seconds",
	CategoryEnumString:   "enum_string",
}

// String returns the category name, or a "|" separated list for combined sets.
func (c CategoryEnum) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}

	var parts []string
	for _, single := range c.Singles() {
		parts = append(parts, categoryNames[single])
	}

	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, "|")
}

// Singles splits a category set into its single categories in bit order.
func (c CategoryEnum) Singles() []CategoryEnum {
	var res []CategoryEnum
	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		if c&category != 0 {
			res = append(res, category)
		}
	}

	return res
}

// ParseCategories parses category names; "all", "default" and "none" are accepted too.
func ParseCategories(names []string) (CategoryEnum, error) {
	var res CategoryEnum

	for _, name := range names {
		switch name {
		case "all":
			res |= CategoryAll
			continue
		case "default":
			res |= CategoryDefault
			continue
		case "none":
			continue
		}

		found := false
		for category, categoryName := range categoryNames {
			if categoryName == name {
				res |= category
				found = true

				break
			}
		}

		if !found {
			return CategoryNone, fmt.Errorf("unknown conversion category %q", name)
		}
	}

	return res, nil
}

var conversionPairs map[CategoryEnum]map[ConversionPair]struct{}

func init() {
	conversionPairs = make(map[CategoryEnum]map[ConversionPair]struct{})

	conversionPairs[CategorySafeNumber] = safeNumberConversionPairs()

	// CategoryUnsafeNumber: every number pair that is not safe
	conversionPairs[CategoryUnsafeNumber] = map[ConversionPair]struct{}{}
	for fromKind := KindEnum(0); int(fromKind) < KindTotal; fromKind++ {
		if !fromKind.IsNumber() {
			continue
		}

		for toKind := KindEnum(0); int(toKind) < KindTotal; toKind++ {
			if !toKind.IsNumber() {
				continue
			}

			pair := ConversionPair{fromKind, toKind}
			if _, ok := conversionPairs[CategorySafeNumber][pair]; ok {
				continue
			}

			conversionPairs[CategoryUnsafeNumber][pair] = struct{}{}
		}
	}

	conversionPairs[CategoryTextNumber] = map[ConversionPair]struct{}{}
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if !numberKind.IsNumber() {
			continue
		}

		conversionPairs[CategoryTextNumber][ConversionPair{numberKind, KindString}] = struct{}{}
		conversionPairs[CategoryTextNumber][ConversionPair{KindString, numberKind}] = struct{}{}
	}

	conversionPairs[CategoryNumericBool] = map[ConversionPair]struct{}{}
	for fromKind := KindEnum(0); int(fromKind) < KindTotal; fromKind++ {
		if !fromKind.IsInteger() {
			continue
		}

		conversionPairs[CategoryNumericBool][ConversionPair{fromKind, KindBool}] = struct{}{}
		conversionPairs[CategoryNumericBool][ConversionPair{KindBool, fromKind}] = struct{}{}
	}

	conversionPairs[CategoryTextualBool] = map[ConversionPair]struct{}{
		{KindString, KindBool}: {},
		{KindBool, KindString}: {},
	}

	conversionPairs[CategoryDatetime] = map[ConversionPair]struct{}{
		{KindString, KindTime}: {},
		{KindTime, KindString}: {},
	}

	conversionPairs[CategoryTimestamp] = map[ConversionPair]struct{}{}
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if !numberKind.IsInteger() {
			continue
		}

		conversionPairs[CategoryTimestamp][ConversionPair{numberKind, KindTime}] = struct{}{}
		conversionPairs[CategoryTimestamp][ConversionPair{KindTime, numberKind}] = struct{}{}
	}

	conversionPairs[CategoryDuration] = map[ConversionPair]struct{}{
		{KindString, KindDuration}: {},
		{KindDuration, KindString}: {},
	}

	conversionPairs[CategoryNanoseconds] = map[ConversionPair]struct{}{}
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if !numberKind.IsInteger() || numberKind == KindUint64 {
			continue
		}

		conversionPairs[CategoryNanoseconds][ConversionPair{numberKind, KindDuration}] = struct{}{}
		conversionPairs[CategoryNanoseconds][ConversionPair{KindDuration, numberKind}] = struct{}{}
	}

	conversionPairs[CategorySeconds] = map[ConversionPair]struct{}{
		{KindFloat32, KindDuration}: {},
		{KindFloat64, KindDuration}: {},
		{KindDuration, KindFloat32}: {},
		{KindDuration, KindFloat64}: {},
	}

	conversionPairs[CategoryEnumString] = map[ConversionPair]struct{}{
		{KindString, KindPrimitiveEnum}:        {},
		{KindPrimitiveEnum, KindString}:        {},
		{KindPrimitiveEnum, KindPrimitiveEnum}: {},
	}
}

func safeNumberConversionPairs() map[ConversionPair]struct{} {
	return map[ConversionPair]struct{}{
		{KindInt, KindInt64}: {}, // int can be any wide from 32 upto 64

		{KindInt8, KindInt}:     {}, // int8 can be safely converted to any signed int
		{KindInt8, KindInt16}:   {},
		{KindInt8, KindInt32}:   {},
		{KindInt8, KindInt64}:   {},
		{KindInt8, KindFloat32}: {},
		{KindInt8, KindFloat64}: {},

		{KindInt16, KindInt}:     {},
		{KindInt16, KindInt32}:   {},
		{KindInt16, KindInt64}:   {},
		{KindInt16, KindFloat32}: {},
		{KindInt16, KindFloat64}: {},

		{KindInt32, KindInt}:     {},
		{KindInt32, KindInt64}:   {},
		{KindInt32, KindFloat64}: {}, // int32 is wider than float32 mantissa

		{KindUint, KindUint64}: {},

		{KindUint8, KindUint}:    {},
		{KindUint8, KindUint16}:  {},
		{KindUint8, KindUint32}:  {},
		{KindUint8, KindUint64}:  {},
		{KindUint8, KindInt}:     {}, // also uint8 can be converted to any wider signed int
		{KindUint8, KindInt16}:   {},
		{KindUint8, KindInt32}:   {},
		{KindUint8, KindInt64}:   {},
		{KindUint8, KindFloat32}: {},
		{KindUint8, KindFloat64}: {},

		{KindUint16, KindUint}:    {},
		{KindUint16, KindUint32}:  {},
		{KindUint16, KindUint64}:  {},
		{KindUint16, KindInt}:     {},
		{KindUint16, KindInt32}:   {},
		{KindUint16, KindInt64}:   {},
		{KindUint16, KindFloat32}: {},
		{KindUint16, KindFloat64}: {},

		{KindUint32, KindUint64}:  {},
		{KindUint32, KindInt64}:   {}, // only int64 is wide enough to hold uint32
		{KindUint32, KindFloat64}: {},

		{KindFloat32, KindFloat64}: {},
	}
}
