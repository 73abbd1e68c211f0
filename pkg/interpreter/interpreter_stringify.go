package interpreter

import (
	"fmt"

	"ep/interpreter-go/pkg/runtime"
)

// FormatValue renders a value the way print writes it.
func FormatValue(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.StringValue:
		return v.Val
	case runtime.IntegerValue:
		if v.Val == nil {
			return "0"
		}
		return v.Val.String()
	case runtime.FloatValue:
		return fmt.Sprintf("%g", v.Val)
	case runtime.NilValue, nil:
		return "nil"
	default:
		return fmt.Sprintf("[%s]", v.Kind())
	}
}
