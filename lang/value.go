package lang

// Type discriminates the kinds of values a translation can produce.
type Type int

const (
	TypeInt Type = iota
	TypeText
	TypeArray
	TypeDict
)

// String returns the lowercase name of the type.
func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeText:
		return "text"
	case TypeArray:
		return "array"
	case TypeDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Field is a single key-value pair of a dictionary.
type Field struct {
	Key   string
	Value Value
}

// Value is the result of translating a program: a tagged union of the four
// value kinds the language can express. Exactly one payload field is
// meaningful, selected by Type.
//
// Dictionaries are represented as an ordered field slice rather than a map so
// that key insertion order survives into serialized output.
type Value struct {
	Text  string
	Array []Value
	Dict  []Field
	Int   int64
	Type  Type
}

// IntValue returns an integer Value.
func IntValue(v int64) Value {
	return Value{Type: TypeInt, Int: v}
}

// TextValue returns a text Value.
func TextValue(s string) Value {
	return Value{Type: TypeText, Text: s}
}

// ArrayValue returns an array Value holding the given elements.
func ArrayValue(elems ...Value) Value {
	return Value{Type: TypeArray, Array: elems}
}

// DictValue returns a dictionary Value holding the given fields.
func DictValue(fields ...Field) Value {
	return Value{Type: TypeDict, Dict: fields}
}

// Set inserts or replaces the dictionary field named key.
// A replaced field keeps its original position; only its value changes.
// Set reports whether an existing field was overwritten.
func (v *Value) Set(key string, val Value) bool {
	for i := range v.Dict {
		if v.Dict[i].Key == key {
			v.Dict[i].Value = val

			return true
		}
	}

	v.Dict = append(v.Dict, Field{Key: key, Value: val})

	return false
}

// Get returns the value of the dictionary field named key.
func (v Value) Get(key string) (Value, bool) {
	for i := range v.Dict {
		if v.Dict[i].Key == key {
			return v.Dict[i].Value, true
		}
	}

	return Value{}, false
}
