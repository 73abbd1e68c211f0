package typechecker

// Type is a statically inferred value category.
type Type interface {
	Name() string
}

type PrimitiveKind string

const (
	PrimitiveNil    PrimitiveKind = "Nil"
	PrimitiveString PrimitiveKind = "String"
	PrimitiveNumber PrimitiveKind = "Number"
)

type PrimitiveType struct {
	Kind PrimitiveKind
}

func (p PrimitiveType) Name() string { return string(p.Kind) }

// UnknownType stands in where inference gave up, such as after an unbound
// read. It never produces further diagnostics.
type UnknownType struct{}

func (UnknownType) Name() string { return "Unknown" }

var (
	nilType    = PrimitiveType{Kind: PrimitiveNil}
	stringType = PrimitiveType{Kind: PrimitiveString}
	numberType = PrimitiveType{Kind: PrimitiveNumber}
)

func typeName(t Type) string {
	if t == nil {
		return "unknown"
	}
	return t.Name()
}

func isUnknownType(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(UnknownType)
	return ok
}

func isPrimitive(t Type, kind PrimitiveKind) bool {
	p, ok := t.(PrimitiveType)
	return ok && p.Kind == kind
}
