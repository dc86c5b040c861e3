package conversion_test

import (
	"fmt"

	"mapper-planner/internal/conversion"
	"mapper-planner/internal/model"
)

func Example() {
	color := &model.Type{ID: model.TypeID{PkgPath: "example.com/paint", Name: "Color"}, Kind: model.TypeKindEnum}
	empty := model.Bean("example.com/paint", "Empty")

	fmt.Println(conversion.KindOf(model.Basic("int")))
	fmt.Println(conversion.KindOf(model.Basic("string")))
	fmt.Println(conversion.KindOf(model.Basic("byte")))
	fmt.Println(conversion.KindOf(color))
	fmt.Println(conversion.KindOf(model.Duration()))
	fmt.Println(conversion.KindOf(model.Time()))
	fmt.Println(conversion.KindOf(empty))
	fmt.Println(conversion.KindOf(model.SliceOf(model.Basic("int"))))
	// Output:
	// KindInt
	// KindString
	// KindUint8
	// KindPrimitiveEnum
	// KindDuration
	// KindTime
	// KindEnum(0)
	// KindEnum(0)
}
