package jsonvalue

// Label is the semantic type assigned to a JSON value.
type Label string

// The fixed type labels. A Value outside these kinds is labelled with its
// kind name.
const (
	LabelNull   Label = "null"
	LabelBool   Label = "bool"
	LabelInt    Label = "int"
	LabelFloat  Label = "float"
	LabelString Label = "string"
	LabelArray  Label = "array"
	LabelObject Label = "object"
)

// Classify maps v to exactly one Label. It is total and has no side effects.
// Booleans are checked before numbers so they can never become "int".
func Classify(v Value) Label {
	switch v.Kind() {
	case KindNull:
		return LabelNull
	case KindBool:
		return LabelBool
	case KindInt:
		return LabelInt
	case KindFloat:
		return LabelFloat
	case KindString:
		return LabelString
	case KindArray:
		return LabelArray
	case KindObject:
		return LabelObject
	default:
		return Label(v.Kind().String())
	}
}

// Reserved discriminant keys. They are part of the report contract.
const (
	// NoType groups records or blocks without a "type" field.
	NoType = "__no_type__"
	// PlainString groups content elements that are bare strings.
	PlainString = "__plain_string__"
	// Other groups content elements that are neither objects nor strings.
	Other = "__other__"
	// ValueField is the synthetic field name used for non-object elements.
	ValueField = "_value"
)

// Discriminant returns the grouping key for the "type" member of obj.
// A missing member yields NoType, a string yields its text, and any other
// value yields its compact JSON text.
func Discriminant(obj Value) string {
	t, ok := obj.Get("type")
	if !ok {
		return NoType
	}
	if t.IsString() {
		return t.Str()
	}
	return t.String()
}
