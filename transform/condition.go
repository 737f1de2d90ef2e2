// Package transform implements the transform pipeline (component E):
// TransformConfig, the condition AST and compiler, TransformCache, Alerts,
// and the filter/contract/synthesise-attribute/metric/structural
// transforms themselves.
package transform

import (
	"errors"
	"fmt"

	"github.com/graphia-app/graphia-sub005/attribute"
)

// ErrUnknownAttribute is returned when a condition references an attribute
// (or pseudo-attribute) not present in the resolver.
var ErrUnknownAttribute = errors.New("transform: unknown attribute")

// ErrBadCondition is returned for structurally invalid condition ASTs.
var ErrBadCondition = errors.New("transform: invalid condition")

// CompareOp is one of the comparison operators a leaf condition node uses.
type CompareOp string

const (
	OpLT CompareOp = "<"
	OpLE CompareOp = "<="
	OpGT CompareOp = ">"
	OpGE CompareOp = ">="
	OpEQ CompareOp = "=="
	OpNE CompareOp = "!="
)

// BoolOp combines two sub-conditions.
type BoolOp string

const (
	And BoolOp = "AND"
	Or  BoolOp = "OR"
)

// Condition is a node in the tree of (attribute OP literal) and
// (sub AND|OR sub) and NOT sub nodes described in §3.
type Condition interface {
	isCondition()
}

// AttrCompare is a leaf: `$degree < 2`, `Label == "apple"`, etc. Attribute
// names beginning with "$" are pseudo-attributes resolved by the pipeline
// from graph structure rather than the attribute registry (e.g. $degree,
// $weight), matching scenario 2 of §8.
type AttrCompare struct {
	Attribute string
	Op        CompareOp
	Literal   attribute.Value
}

func (AttrCompare) isCondition() {}

// BoolNode is an internal AND/OR node.
type BoolNode struct {
	Op          BoolOp
	Left, Right Condition
}

func (BoolNode) isCondition() {}

// NotNode negates its sub-condition.
type NotNode struct {
	Sub Condition
}

func (NotNode) isCondition() {}

// Resolver looks up an attribute (or pseudo-attribute) value for an
// element id. The pipeline supplies an implementation that checks the
// attribute registry first, then built-in structural pseudo-attributes.
type Resolver interface {
	Resolve(name string, id uint32) (attribute.Value, error)
}

// Predicate is a compiled condition ready to evaluate against element ids.
type Predicate func(id uint32) (bool, error)

// Compile turns a Condition tree into a Predicate evaluated against
// resolver. A nil Condition compiles to an always-true predicate, so a
// filter step with no condition matches (and removes) every element.
func Compile(cond Condition, resolver Resolver) (Predicate, error) {
	if cond == nil {
		return func(uint32) (bool, error) { return true, nil }, nil
	}
	switch c := cond.(type) {
	case AttrCompare:
		return compileAttrCompare(c, resolver)
	case BoolNode:
		left, err := Compile(c.Left, resolver)
		if err != nil {
			return nil, err
		}
		right, err := Compile(c.Right, resolver)
		if err != nil {
			return nil, err
		}
		switch c.Op {
		case And:
			return func(id uint32) (bool, error) {
				l, err := left(id)
				if err != nil || !l {
					return false, err
				}
				return right(id)
			}, nil
		case Or:
			return func(id uint32) (bool, error) {
				l, err := left(id)
				if err != nil {
					return false, err
				}
				if l {
					return true, nil
				}
				return right(id)
			}, nil
		default:
			return nil, fmt.Errorf("%w: unknown bool op %q", ErrBadCondition, c.Op)
		}
	case NotNode:
		sub, err := Compile(c.Sub, resolver)
		if err != nil {
			return nil, err
		}
		return func(id uint32) (bool, error) {
			v, err := sub(id)
			if err != nil {
				return false, err
			}
			return !v, nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown node type %T", ErrBadCondition, cond)
	}
}

func compileAttrCompare(c AttrCompare, resolver Resolver) (Predicate, error) {
	return func(id uint32) (bool, error) {
		v, err := resolver.Resolve(c.Attribute, id)
		if err != nil {
			return false, err
		}
		switch c.Op {
		case OpLT:
			return v.AsFloat() < c.Literal.AsFloat(), nil
		case OpLE:
			return v.AsFloat() <= c.Literal.AsFloat(), nil
		case OpGT:
			return v.AsFloat() > c.Literal.AsFloat(), nil
		case OpGE:
			return v.AsFloat() >= c.Literal.AsFloat(), nil
		case OpEQ:
			if v.Type == attribute.String || c.Literal.Type == attribute.String {
				return v.String2() == c.Literal.String2(), nil
			}
			return v.AsFloat() == c.Literal.AsFloat(), nil
		case OpNE:
			if v.Type == attribute.String || c.Literal.Type == attribute.String {
				return v.String2() != c.Literal.String2(), nil
			}
			return v.AsFloat() != c.Literal.AsFloat(), nil
		default:
			return false, fmt.Errorf("%w: unknown compare op %q", ErrBadCondition, c.Op)
		}
	}, nil
}
