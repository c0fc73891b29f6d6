package domain

// SpecifierOp is a version comparison operator from PEP 440.
type SpecifierOp string

const (
	// OpNone indicates a bare package name without any version constraint.
	OpNone SpecifierOp = ""

	// OpExact is the only operator that satisfies the pinning contract.
	OpExact SpecifierOp = "=="

	// OpArbitraryEqual is the PEP 440 arbitrary equality operator.
	OpArbitraryEqual SpecifierOp = "==="

	// OpCompatible is the compatible-release operator.
	OpCompatible SpecifierOp = "~="

	// OpNotEqual excludes a single version.
	OpNotEqual SpecifierOp = "!="

	// OpGreaterEqual is a lower bound.
	OpGreaterEqual SpecifierOp = ">="

	// OpLessEqual is an upper bound.
	OpLessEqual SpecifierOp = "<="

	// OpGreater is an exclusive lower bound.
	OpGreater SpecifierOp = ">"

	// OpLess is an exclusive upper bound.
	OpLess SpecifierOp = "<"
)

// KnownOps lists all recognized operators, longest first so that parsers can
// match greedily ("===" before "==", "==" before "=").
var KnownOps = []SpecifierOp{
	OpArbitraryEqual,
	OpExact,
	OpCompatible,
	OpNotEqual,
	OpGreaterEqual,
	OpLessEqual,
	OpGreater,
	OpLess,
}
