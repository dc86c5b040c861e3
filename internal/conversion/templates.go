package conversion

import (
	"fmt"
	"strconv"
	"strings"

	"mapper-planner/internal/common"
	"mapper-planner/internal/model"
)

// DefaultTimeLayout is the layout used by datetime conversions without a format hint.
const DefaultTimeLayout = "time.RFC3339Nano"

var templates map[ConversionPair][]string

func errorReturn(msg string) string {
	return `	return fmt.Errorf("{{.funcName}}: ` + msg + `)`
}

func init() {
	templates = map[ConversionPair][]string{}

	// CategorySafeNumber
	// CategoryUnsafeNumber
	for fromKind := KindEnum(0); int(fromKind) < KindTotal; fromKind++ {
		if !fromKind.IsNumber() {
			continue
		}

		for toKind := KindEnum(0); int(toKind) < KindTotal; toKind++ {
			if !toKind.IsNumber() {
				continue
			}

			templates[ConversionPair{fromKind, toKind}] = []string{"{{.dst}} = {{.dstType}}({{.src}})"}
		}
	}

	// CategoryTextNumber
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		switch {
		case numberKind.IsSigned():
			templates[ConversionPair{numberKind, KindString}] = []string{"{{.dst}} = strconv.FormatInt(int64({{.src}}), 10)"}
			templates[ConversionPair{KindString, numberKind}] = parseTemplate("int64",
				fmt.Sprintf("strconv.ParseInt({{.src}}, 10, %d)", numberKind.Bits()))
		case numberKind.IsUnsigned():
			templates[ConversionPair{numberKind, KindString}] = []string{"{{.dst}} = strconv.FormatUint(uint64({{.src}}), 10)"}
			templates[ConversionPair{KindString, numberKind}] = parseTemplate("uint64",
				fmt.Sprintf("strconv.ParseUint({{.src}}, 10, %d)", numberKind.Bits()))
		case numberKind.IsFloat():
			templates[ConversionPair{numberKind, KindString}] = []string{
				fmt.Sprintf("{{.dst}} = strconv.FormatFloat(float64({{.src}}), 'f', -1, %d)", numberKind.Bits()),
			}
			templates[ConversionPair{KindString, numberKind}] = parseTemplate("float64",
				fmt.Sprintf("strconv.ParseFloat({{.src}}, %d)", numberKind.Bits()))
		}
	}

	// CategoryNumericBool
	for fromKind := KindEnum(0); int(fromKind) < KindTotal; fromKind++ {
		if !fromKind.IsInteger() {
			continue
		}

		// 0, 1 - valid, other numbers is error
		templates[ConversionPair{fromKind, KindBool}] = []string{
			"switch {{.src}} {",
			"case 0:",
			"	{{.dst}} = false",
			"case 1:",
			"	{{.dst}} = true",
			"default:",
			errorReturn(`only numbers 0 and 1 are allowed for bool, got: %d", {{.src}}`),
			"}",
		}
		templates[ConversionPair{KindBool, fromKind}] = []string{
			"if {{.src}} {",
			"	{{.dst}} = 1",
			"} else {",
			"	{{.dst}} = 0",
			"}",
		}
	}

	// CategoryTextualBool
	templates[ConversionPair{KindString, KindBool}] = []string{
		"switch strings.ToLower({{.src}}) {",
		`case "true", "yes", "on":`,
		"	{{.dst}} = true",
		`case "false", "no", "off":`,
		"	{{.dst}} = false",
		"default:",
		errorReturn(`only strings true/false, yes/no, on/off are allowed for bool, got: %s", {{.src}}`),
		"}",
	}
	templates[ConversionPair{KindBool, KindString}] = []string{"{{.dst}} = strconv.FormatBool({{.src}})"}

	// CategoryDatetime
	templates[ConversionPair{KindString, KindTime}] = parseTemplate("time.Time",
		"time.Parse("+DefaultTimeLayout+", {{.src}})")
	templates[ConversionPair{KindTime, KindString}] = []string{"{{.dst}} = {{.src}}.Format(" + DefaultTimeLayout + ")"}

	// CategoryTimestamp
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if !numberKind.IsInteger() {
			continue
		}

		templates[ConversionPair{numberKind, KindTime}] = []string{"{{.dst}} = time.Unix(int64({{.src}}), 0)"}
		templates[ConversionPair{KindTime, numberKind}] = []string{"{{.dst}} = {{.dstType}}({{.src}}.Unix())"}
	}

	// CategoryDuration
	templates[ConversionPair{KindString, KindDuration}] = parseTemplate("time.Duration", "time.ParseDuration({{.src}})")
	templates[ConversionPair{KindDuration, KindString}] = []string{"{{.dst}} = {{.src}}.String()"}

	// CategoryNanoseconds
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if !numberKind.IsInteger() || numberKind == KindUint64 {
			continue
		}

		templates[ConversionPair{numberKind, KindDuration}] = []string{"{{.dst}} = time.Duration({{.src}})"}
		templates[ConversionPair{KindDuration, numberKind}] = []string{"{{.dst}} = {{.dstType}}({{.src}}.Nanoseconds())"}
	}

	// CategorySeconds
	templates[ConversionPair{KindFloat32, KindDuration}] = []string{"{{.dst}} = time.Duration(float64({{.src}}) * float64(time.Second))"}
	templates[ConversionPair{KindFloat64, KindDuration}] = []string{"{{.dst}} = time.Duration({{.src}} * float64(time.Second))"}
	templates[ConversionPair{KindDuration, KindFloat32}] = []string{"{{.dst}} = float32({{.src}}.Seconds())"}
	templates[ConversionPair{KindDuration, KindFloat64}] = []string{"{{.dst}} = {{.src}}.Seconds()"}
}

// parseTemplate is the shape shared by every conversion that calls a parsing function
// returning (value, error).
func parseTemplate(stemType, call string) []string {
	return []string{
		"var {{.dstStem}} " + stemType,
		"{{.dstStem}}, err = " + call,
		"if err != nil {",
		`	return fmt.Errorf("{{.funcName}}: %w", err)`,
		"}",
		"",
		"{{.dst}} = {{.dstType}}({{.dstStem}})",
	}
}

// enumTemplate builds the statements of an enum conversion. Enum constants are
// matched by name; unknown values fail at runtime.
func enumTemplate(source, target *model.Type) (lines []string, canFail bool) {
	srcKind, dstKind := KindOf(source), KindOf(target)

	switch {
	case srcKind == KindString && len(target.Constants) > 0:
		lines = append(lines, "switch {{.src}} {")
		for _, c := range target.Constants {
			lines = append(lines,
				"case "+strconv.Quote(c)+":",
				"	{{.dst}} = "+qualified(target, c))
		}

		lines = append(lines, "default:", errorReturn(`unknown `+target.ID.Name+` value: %s", {{.src}}`), "}")

		return lines, true
	case dstKind == KindString && len(source.Constants) > 0:
		lines = append(lines, "switch {{.src}} {")
		for _, c := range source.Constants {
			lines = append(lines,
				"case "+qualified(source, c)+":",
				"	{{.dst}} = "+strconv.Quote(c))
		}

		lines = append(lines, "default:", errorReturn(`unknown `+source.ID.Name+` value: %v", {{.src}}`), "}")

		return lines, true
	case srcKind == KindPrimitiveEnum && dstKind == KindPrimitiveEnum &&
		len(source.Constants) > 0 && len(target.Constants) > 0:
		shared := common.AsSet(target.Constants...)

		lines = append(lines, "switch {{.src}} {")
		for _, c := range source.Constants {
			if _, ok := shared[c]; !ok {
				continue
			}

			lines = append(lines,
				"case "+qualified(source, c)+":",
				"	{{.dst}} = "+qualified(target, c))
		}

		lines = append(lines, "default:", errorReturn(`no `+target.ID.Name+` counterpart for value: %v", {{.src}}`), "}")

		return lines, true
	}

	// Enums without known constants share their underlying representation.
	return []string{"{{.dst}} = {{.dstType}}({{.src}})"}, false
}

func qualified(t *model.Type, constant string) string {
	if alias := common.PkgAlias(t.ID.PkgPath); alias != "" {
		return alias + "." + constant
	}

	return constant
}

// imports detects the packages referenced by a template.
func imports(lines []string) []model.TypeID {
	var res []model.TypeID

	for _, pkg := range []string{"fmt", "strconv", "strings", "time"} {
		for _, line := range lines {
			if strings.Contains(line, pkg+".") {
				res = append(res, model.TypeID{PkgPath: pkg})

				break
			}
		}
	}

	return res
}

func canFail(lines []string) bool {
	for _, line := range lines {
		if strings.Contains(line, "return fmt.Errorf") {
			return true
		}
	}

	return false
}
