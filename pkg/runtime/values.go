package runtime

import (
	"fmt"
	"math/big"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindInteger
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// NilValue is what print evaluates to.
type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

// IntegerValue is arbitrary precision; number literals never overflow.
type IntegerValue struct {
	Val *big.Int
}

func (v IntegerValue) Kind() Kind { return KindInteger }

// FloatValue only arises from an inexact integer division or arithmetic
// involving such a result.
type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

func NewInteger(v int64) IntegerValue { return IntegerValue{Val: big.NewInt(v)} }

// IsNumeric reports whether v takes part in arithmetic.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case IntegerValue, FloatValue:
		return true
	default:
		return false
	}
}

// KindOf is v.Kind() tolerating a nil interface, which reports as nil.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNil
	}
	return v.Kind()
}

// CloneBigInt copies the provided big.Int pointer, tolerating nil.
func CloneBigInt(src *big.Int) *big.Int {
	if src == nil {
		return nil
	}
	return new(big.Int).Set(src)
}
