package compiler

import "testing"

func TestTypeCompatible(t *testing.T) {
	tests := []struct {
		a, b Type
		want bool
	}{
		{TypeInteger, TypeInteger, true},
		{TypeInteger, TypeFloat, true},
		{TypeInteger, TypeString, false},
		{TypeInteger, TypeBoolean, false},
		{TypeString, TypeString, true},
		{TypeString, TypeBoolean, false},
		{TypeBoolean, TypeBoolean, true},
		{TypeUnknown, TypeString, true},
		{TypeUnknown, TypeUnknown, true},
	}

	for _, tt := range tests {
		if got := tt.a.Compatible(tt.b); got != tt.want {
			t.Errorf("%s.Compatible(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		// The relation is symmetric.
		if got := tt.b.Compatible(tt.a); got != tt.want {
			t.Errorf("%s.Compatible(%s) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{TypeInteger, "Integer"},
		{TypeFloat, "Float"},
		{TypeString, "String"},
		{TypeBoolean, "Boolean"},
		{TypeUnknown, "Unknown"},
		{Type(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", int(tt.t), got, tt.want)
		}
	}
}
