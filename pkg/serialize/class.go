package serialize

import "strings"

// ClassName returns the bare variant name carried by a discriminator value.
// The engine namespaces its class names the way Java does, and the verifier
// suffixes type arguments in parentheses, so the following all resolve to
// "Name":
//
//	"Name"
//	"namespace.more.Name"
//	"namespace.Outer$Name"
//	"Name(Arg1;Arg2)"
//	"namespace.Outer$Name(Arg)"
func ClassName(s string) string {
	// drop the type-argument suffix first; namespace separators never
	// appear inside it
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndexByte(s, '$'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// TypeArgs returns the semicolon-separated type arguments of a
// discriminator value, or nil when it carries none.
// "GetField(Environment;Bool)" yields ["Environment", "Bool"].
func TypeArgs(s string) []string {
	open := strings.IndexByte(s, '(')
	close := strings.LastIndexByte(s, ')')
	if open < 0 || close < open {
		return nil
	}
	inner := s[open+1 : close]
	if inner == "" {
		return nil
	}
	return strings.Split(inner, ";")
}
