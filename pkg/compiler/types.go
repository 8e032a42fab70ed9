package compiler

// Type is the closed set of value types known to the analyzer.
type Type int

const (
	TypeInteger Type = iota
	TypeFloat
	TypeString
	TypeBoolean
	TypeUnknown
)

var typeNames = [...]string{
	TypeInteger: "Integer",
	TypeFloat:   "Float",
	TypeString:  "String",
	TypeBoolean: "Boolean",
	TypeUnknown: "Unknown",
}

func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Compatible reports whether two types may be combined by a binary operator
// or assigned across a typed slot. Unknown matches anything, Integer and
// Float convert implicitly, and all other pairs require exact equality.
// The relation is symmetric.
func (t Type) Compatible(other Type) bool {
	if t == TypeUnknown || other == TypeUnknown {
		return true
	}
	if (t == TypeInteger && other == TypeFloat) || (t == TypeFloat && other == TypeInteger) {
		return true
	}
	return t == other
}
