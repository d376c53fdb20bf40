package aast

import "strings"

// TypeField is the wire key carrying the discriminator of every IR node.
// "$type" is the default expected by Newtonsoft-style consumers.
const TypeField = "$type"

// TypeAnnotation names an IR type in discriminator suffixes and in the
// network's route layout.
type TypeAnnotation string

const (
	TypeUnknown     TypeAnnotation = "_"
	TypeBool        TypeAnnotation = "Bool"
	TypeInt2        TypeAnnotation = "Int2"
	TypeInt32       TypeAnnotation = "Int32"
	TypeUInt2       TypeAnnotation = "UInt2"
	TypeUInt32      TypeAnnotation = "UInt32"
	TypeBigInt      TypeAnnotation = "BigInt"
	TypeString      TypeAnnotation = "String"
	TypeSet         TypeAnnotation = "Set"
	TypePair        TypeAnnotation = "Pair"
	TypeIPAddress   TypeAnnotation = "IpAddress"
	TypeIPPrefix    TypeAnnotation = "IpPrefix"
	TypeRoute       TypeAnnotation = "Route"
	TypeResult      TypeAnnotation = "Result"
	TypeEnvironment TypeAnnotation = "Environment"
)

// Annotate renders a discriminator tag for the named variant with the
// given type arguments: Annotate("GetField", a, b) is "GetField(a;b)".
func Annotate(name string, args ...TypeAnnotation) string {
	if len(args) == 0 {
		return name
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = string(a)
	}
	return name + "(" + strings.Join(parts, ";") + ")"
}

// EnvField names a field of the route environment record.
type EnvField string

const (
	EnvPrefix             EnvField = "Prefix"
	EnvLp                 EnvField = "Lp"
	EnvMetric             EnvField = "Metric"
	EnvTag                EnvField = "Tag"
	EnvWeight             EnvField = "Weight"
	EnvCommunities        EnvField = "Communities"
	EnvOriginType         EnvField = "OriginType"
	EnvNexthop            EnvField = "Nexthop"
	EnvLocalDefaultAction EnvField = "LocalDefaultAction"
	EnvResult             EnvField = "Result"
)

// Type returns the type of the environment field.
func (f EnvField) Type() TypeAnnotation {
	switch f {
	case EnvPrefix:
		return TypeIPPrefix
	case EnvLp, EnvMetric, EnvTag, EnvWeight:
		return TypeUInt32
	case EnvCommunities:
		return TypeSet
	case EnvOriginType:
		return TypeUInt2
	case EnvNexthop:
		return TypeIPAddress
	case EnvLocalDefaultAction:
		return TypeBool
	case EnvResult:
		return TypeResult
	}
	return TypeUnknown
}

// EnvironmentFields lists the route environment fields in their canonical
// order.
func EnvironmentFields() []EnvField {
	return []EnvField{
		EnvPrefix, EnvLp, EnvMetric, EnvTag, EnvWeight,
		EnvCommunities, EnvOriginType, EnvNexthop,
		EnvLocalDefaultAction, EnvResult,
	}
}

// ResultField names a field of the result record.
type ResultField string

const (
	ResultValue       ResultField = "Value"
	ResultExit        ResultField = "Exit"
	ResultFallthrough ResultField = "Fallthrough"
	ResultReturned    ResultField = "Returned"
)

// Type returns the type of the result field. Every result field is a flag.
func (f ResultField) Type() TypeAnnotation { return TypeBool }

// ResultFields lists the result record fields in their canonical order.
func ResultFields() []ResultField {
	return []ResultField{ResultValue, ResultExit, ResultFallthrough, ResultReturned}
}

// RouteLayout returns the environment field layout serialized at the top
// of every network document.
func RouteLayout() map[string]TypeAnnotation {
	layout := make(map[string]TypeAnnotation)
	for _, f := range EnvironmentFields() {
		layout[string(f)] = f.Type()
	}
	return layout
}
