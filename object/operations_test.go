package object

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willowmere/scribe/op"
)

func TestIntArithmetic(t *testing.T) {
	tests := []struct {
		code op.Code
		a, b int64
		want int64
	}{
		{op.Add, 2, 3, 5},
		{op.Sub, 2, 3, -1},
		{op.Mul, 4, 3, 12},
		{op.Div, 7, 2, 3},
	}
	for _, tt := range tests {
		result, err := BinaryOp(tt.code, NewInt(tt.a), NewInt(tt.b))
		require.Nil(t, err)
		require.Equal(t, NewInt(tt.want), result)
	}
}

func TestMixedArithmeticPromotesToFloat(t *testing.T) {
	result, err := BinaryOp(op.Add, NewInt(1), NewFloat(2.5))
	require.Nil(t, err)
	require.Equal(t, NewFloat(3.5), result)

	result, err = BinaryOp(op.Mul, NewFloat(0.5), NewInt(4))
	require.Nil(t, err)
	require.Equal(t, NewFloat(2.0), result)
}

func TestDivisionByZero(t *testing.T) {
	_, err := BinaryOp(op.Div, NewInt(1), NewInt(0))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "division by zero")

	_, err = BinaryOp(op.Div, NewFloat(1), NewFloat(0))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "division by zero")
}

func TestStringConcat(t *testing.T) {
	result, err := BinaryOp(op.Add, NewString("foo"), NewString("bar"))
	require.Nil(t, err)
	require.Equal(t, NewString("foobar"), result)

	// Only addition applies to strings.
	_, err = BinaryOp(op.Sub, NewString("foo"), NewString("bar"))
	require.NotNil(t, err)
	_, err = BinaryOp(op.Add, NewString("foo"), NewInt(1))
	require.NotNil(t, err)
}

func TestEquality(t *testing.T) {
	tests := []struct {
		left, right Object
		equal       bool
	}{
		{NewInt(2), NewInt(2), true},
		{NewInt(2), NewInt(3), false},
		{NewInt(2), NewFloat(2.0), true},
		{NewFloat(1.5), NewFloat(1.5), true},
		{NewString("a"), NewString("a"), true},
		{NewString("a"), NewString("b"), false},
		{True, True, true},
		{True, False, false},
		{NewInt(1), NewString("1"), false},
		{Nil, Nil, true},
		{Nil, NewInt(0), false},
	}
	for _, tt := range tests {
		result, err := BinaryOp(op.Eq, tt.left, tt.right)
		require.Nil(t, err)
		require.Equal(t, NewBool(tt.equal), result, "%s == %s", tt.left.Inspect(), tt.right.Inspect())

		result, err = BinaryOp(op.Ne, tt.left, tt.right)
		require.Nil(t, err)
		require.Equal(t, NewBool(!tt.equal), result)
	}
}

func TestOrdering(t *testing.T) {
	tests := []struct {
		code        op.Code
		left, right Object
		want        bool
	}{
		{op.Lt, NewInt(1), NewInt(2), true},
		{op.Lt, NewInt(2), NewInt(2), false},
		{op.Le, NewInt(2), NewInt(2), true},
		{op.Gt, NewInt(3), NewInt(2), true},
		{op.Gt, NewInt(2), NewInt(2), false},
		{op.Ge, NewInt(2), NewInt(2), true},
		{op.Lt, NewInt(1), NewFloat(1.5), true},
		{op.Lt, NewString("abc"), NewString("abd"), true},
		{op.Ge, NewString("b"), NewString("a"), true},
	}
	for _, tt := range tests {
		result, err := BinaryOp(tt.code, tt.left, tt.right)
		require.Nil(t, err)
		require.Equal(t, NewBool(tt.want), result,
			"%s %s %s", tt.left.Inspect(), op.GetInfo(tt.code).Name, tt.right.Inspect())
	}
}

func TestOrderingTypeMismatch(t *testing.T) {
	_, err := BinaryOp(op.Lt, NewString("a"), NewInt(1))
	require.NotNil(t, err)
	_, err = BinaryOp(op.Lt, True, False)
	require.NotNil(t, err)
}

func TestNegate(t *testing.T) {
	result, err := Negate(NewInt(5))
	require.Nil(t, err)
	require.Equal(t, NewInt(-5), result)

	result, err = Negate(NewFloat(2.5))
	require.Nil(t, err)
	require.Equal(t, NewFloat(-2.5), result)

	_, err = Negate(NewString("x"))
	require.NotNil(t, err)
}

func TestTruthiness(t *testing.T) {
	truthy := []Object{NewInt(1), NewInt(-1), NewFloat(0.5), NewString("x"), True}
	for _, obj := range truthy {
		require.True(t, obj.IsTruthy(), obj.Inspect())
	}
	falsy := []Object{NewInt(0), NewFloat(0), NewString(""), False, Nil}
	for _, obj := range falsy {
		require.False(t, obj.IsTruthy(), obj.Inspect())
	}
}

func TestInspect(t *testing.T) {
	require.Equal(t, "42", NewInt(42).Inspect())
	require.Equal(t, "2.5", NewFloat(2.5).Inspect())
	require.Equal(t, `"hi"`, NewString("hi").Inspect())
	require.Equal(t, "true", True.Inspect())
	require.Equal(t, "nil", Nil.Inspect())
	require.Equal(t, "suspend(sleep)", NewSuspension("sleep", nil).Inspect())
}
