package transform

import "github.com/graphia-app/graphia-sub005/attribute"

// Action names the kind of transform a TransformConfig configures.
type Action string

const (
	ActionFilterNode      Action = "filter-node"
	ActionFilterEdge      Action = "filter-edge"
	ActionFilterComponent Action = "filter-component"
	ActionContractEdges   Action = "contract-edges"
	ActionSynthesise      Action = "attribute-from-condition"
	ActionPageRank        Action = "pagerank"
	ActionEccentricity    Action = "eccentricity"
	ActionMCL             Action = "mcl"
	ActionKCore           Action = "k-core"
	ActionGiantComponent  Action = "giant-component"
	ActionRemoveLeaves    Action = "remove-leaves"
)

// ConfigFlag is a boolean toggle on a TransformConfig, e.g. "repeating".
type ConfigFlag string

const (
	Repeating ConfigFlag = "repeating"
	Invert    ConfigFlag = "invert"
)

// Param is a scalar or string parameter value.
type Param struct {
	IsString bool
	Number   float64
	String   string
}

func NumberParam(v float64) Param { return Param{Number: v} }
func StringParam(v string) Param  { return Param{IsString: true, String: v} }

// TransformConfig is the declarative record describing one pipeline step
// (§3): action, free parameters, attribute-name parameters, an optional
// condition AST, and flags.
type TransformConfig struct {
	Action              Action
	Parameters          map[string]Param
	AttributeParameters map[string]string
	Condition           Condition
	Flags               map[ConfigFlag]bool
	// NewAttributeName and NewAttributeType are used by ActionSynthesise.
	NewAttributeName string
	NewAttributeType attribute.ValueType
}

// HasFlag reports whether f is set.
func (c TransformConfig) HasFlag(f ConfigFlag) bool { return c.Flags[f] }

// Equal reports whether two configs are value-identical, used by
// TransformCache to decide whether a cached step can be reused (§4.3).
func (c TransformConfig) Equal(other TransformConfig) bool {
	if c.Action != other.Action || c.NewAttributeName != other.NewAttributeName ||
		c.NewAttributeType != other.NewAttributeType {
		return false
	}
	if len(c.Parameters) != len(other.Parameters) {
		return false
	}
	for k, v := range c.Parameters {
		ov, ok := other.Parameters[k]
		if !ok || ov != v {
			return false
		}
	}
	if len(c.AttributeParameters) != len(other.AttributeParameters) {
		return false
	}
	for k, v := range c.AttributeParameters {
		if other.AttributeParameters[k] != v {
			return false
		}
	}
	if len(c.Flags) != len(other.Flags) {
		return false
	}
	for k, v := range c.Flags {
		if other.Flags[k] != v {
			return false
		}
	}
	return conditionEqual(c.Condition, other.Condition)
}

func conditionEqual(a, b Condition) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case AttrCompare:
		bv, ok := b.(AttrCompare)
		return ok && av == bv
	case BoolNode:
		bv, ok := b.(BoolNode)
		return ok && av.Op == bv.Op && conditionEqual(av.Left, bv.Left) && conditionEqual(av.Right, bv.Right)
	case NotNode:
		bv, ok := b.(NotNode)
		return ok && conditionEqual(av.Sub, bv.Sub)
	default:
		return false
	}
}
