package object

import (
	"github.com/willowmere/scribe/errz"
	"github.com/willowmere/scribe/op"
)

// BinaryOp applies an arithmetic or comparison opcode to two operands,
// with the left operand given first. Division by zero and operand type
// mismatches are runtime errors, not panics.
func BinaryOp(code op.Code, left, right Object) (Object, error) {
	switch code {
	case op.Add, op.Sub, op.Mul, op.Div:
		return arithmetic(code, left, right)
	case op.Eq:
		return NewBool(left.Equals(right)), nil
	case op.Ne:
		return NewBool(!left.Equals(right)), nil
	case op.Lt, op.Le, op.Gt, op.Ge:
		return compare(code, left, right)
	}
	return nil, errz.RuntimeErrorf("unsupported binary opcode: %d", code)
}

func arithmetic(code op.Code, left, right Object) (Object, error) {
	// String concatenation is the only non-numeric arithmetic.
	if ls, ok := left.(*String); ok {
		rs, ok := right.(*String)
		if !ok || code != op.Add {
			return nil, typeMismatch(code, left, right)
		}
		return NewString(ls.value + rs.value), nil
	}
	lf, lIsFloat, ok := numeric(left)
	if !ok {
		return nil, typeMismatch(code, left, right)
	}
	rf, rIsFloat, ok := numeric(right)
	if !ok {
		return nil, typeMismatch(code, left, right)
	}
	if lIsFloat || rIsFloat {
		return floatArithmetic(code, lf, rf)
	}
	return intArithmetic(code, left.(*Int).value, right.(*Int).value)
}

func intArithmetic(code op.Code, a, b int64) (Object, error) {
	switch code {
	case op.Add:
		return NewInt(a + b), nil
	case op.Sub:
		return NewInt(a - b), nil
	case op.Mul:
		return NewInt(a * b), nil
	case op.Div:
		if b == 0 {
			return nil, errz.RuntimeErrorf("division by zero")
		}
		return NewInt(a / b), nil
	}
	return nil, errz.RuntimeErrorf("unsupported arithmetic opcode: %d", code)
}

func floatArithmetic(code op.Code, a, b float64) (Object, error) {
	switch code {
	case op.Add:
		return NewFloat(a + b), nil
	case op.Sub:
		return NewFloat(a - b), nil
	case op.Mul:
		return NewFloat(a * b), nil
	case op.Div:
		if b == 0 {
			return nil, errz.RuntimeErrorf("division by zero")
		}
		return NewFloat(a / b), nil
	}
	return nil, errz.RuntimeErrorf("unsupported arithmetic opcode: %d", code)
}

func compare(code op.Code, left, right Object) (Object, error) {
	if ls, ok := left.(*String); ok {
		rs, ok := right.(*String)
		if !ok {
			return nil, typeMismatch(code, left, right)
		}
		return orderingResult(code, ls.value < rs.value, ls.value == rs.value), nil
	}
	lf, _, ok := numeric(left)
	if !ok {
		return nil, typeMismatch(code, left, right)
	}
	rf, _, ok := numeric(right)
	if !ok {
		return nil, typeMismatch(code, left, right)
	}
	return orderingResult(code, lf < rf, lf == rf), nil
}

func orderingResult(code op.Code, less, equal bool) *Bool {
	switch code {
	case op.Lt:
		return NewBool(less)
	case op.Le:
		return NewBool(less || equal)
	case op.Gt:
		return NewBool(!less && !equal)
	default: // op.Ge
		return NewBool(!less)
	}
}

// Negate applies unary minus to a numeric operand.
func Negate(operand Object) (Object, error) {
	switch operand := operand.(type) {
	case *Int:
		return NewInt(-operand.value), nil
	case *Float:
		return NewFloat(-operand.value), nil
	}
	return nil, errz.RuntimeErrorf("cannot negate %s", operand.Type())
}

func numeric(obj Object) (value float64, isFloat, ok bool) {
	switch obj := obj.(type) {
	case *Int:
		return float64(obj.value), false, true
	case *Float:
		return obj.value, true, true
	}
	return 0, false, false
}

func typeMismatch(code op.Code, left, right Object) error {
	return errz.RuntimeErrorf("unsupported operand types for %s: %s and %s",
		op.GetInfo(code).Name, left.Type(), right.Type())
}
