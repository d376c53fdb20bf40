package convert

import (
	"log/slog"

	"github.com/NetworkVerification/angler-sub000/pkg/aast"
)

// Arg is the name of the environment argument every converted policy
// function takes.
const Arg = "env"

// Options tunes the conversion.
type Options struct {
	// Simplify enables constant folding of boolean connectives and
	// elimination of branches with a literal guard. Simplification is
	// idempotent: converting already-simplified output changes nothing.
	Simplify bool
}

// Converter recompiles source policy into the verifier IR. The zero value
// is not usable; construct with New.
type Converter struct {
	opts    Options
	logger  *slog.Logger
	metrics *Metrics
}

// New returns a Converter. logger and metrics may be nil.
func New(opts Options, logger *slog.Logger, metrics *Metrics) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{opts: opts, logger: logger, metrics: metrics}
}

// Declared structures are referenced by mangled names so that route filter
// lists, community sets and community match expressions with the same
// source name cannot collide in a node's constant table.

func communityMatchName(name string) string { return "community-match-" + name }

func communitySetName(name string) string { return "community-set-" + name }

func routeFilterListName(name string) string { return "route-filter-list-" + name }

func argVar() *aast.Var {
	return &aast.Var{Name: Arg, Ty: aast.TypeUnknown}
}

// getEnv reads one field of the environment argument.
func getEnv(f aast.EnvField) *aast.GetField {
	return &aast.GetField{
		Record:    argVar(),
		FieldName: string(f),
		RecordTy:  aast.TypeEnvironment,
		FieldTy:   f.Type(),
	}
}

// setEnv rebinds the environment argument with one field replaced.
func setEnv(f aast.EnvField, value aast.Expression) *aast.Assign {
	return &aast.Assign{
		Var: Arg,
		Expr: &aast.WithField{
			Record:     argVar(),
			FieldName:  string(f),
			FieldValue: value,
			RecordTy:   aast.TypeEnvironment,
			FieldTy:    f.Type(),
		},
		Ty: aast.TypeUnknown,
	}
}

// resultFlag reads one flag of the environment's result record.
func resultFlag(f aast.ResultField) *aast.GetField {
	return &aast.GetField{
		Record:    getEnv(aast.EnvResult),
		FieldName: string(f),
		RecordTy:  aast.TypeResult,
		FieldTy:   aast.TypeBool,
	}
}

func boolLit(v bool) *aast.LiteralBool {
	return &aast.LiteralBool{Value: v}
}

// literalBool reports whether e is a boolean literal and its value.
func literalBool(e aast.Expression) (bool, bool) {
	if b, ok := e.(*aast.LiteralBool); ok {
		return b.Value, true
	}
	return false, false
}
