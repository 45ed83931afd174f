package object

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromGoValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want Object
	}{
		{nil, Nil},
		{true, True},
		{false, False},
		{3, NewInt(3)},
		{int32(4), NewInt(4)},
		{int64(5), NewInt(5)},
		{float32(1.5), NewFloat(1.5)},
		{2.5, NewFloat(2.5)},
		{"hello", NewString("hello")},
	}
	for _, tt := range tests {
		obj, err := FromGoValue(tt.in)
		require.Nil(t, err)
		require.Equal(t, tt.want, obj, "%v", tt.in)
	}
}

func TestFromGoValuePassesObjectsThrough(t *testing.T) {
	orig := NewInt(7)
	obj, err := FromGoValue(orig)
	require.Nil(t, err)
	require.Same(t, Object(orig), obj)
}

func TestFromGoValueWrapsFunctions(t *testing.T) {
	fn := BuiltinFunction(func(ctx context.Context, args ...Object) (Object, error) {
		return NewInt(int64(len(args))), nil
	})
	obj, err := FromGoValue(fn)
	require.Nil(t, err)
	builtin, ok := obj.(*Builtin)
	require.True(t, ok)
	result, err := builtin.Call(context.Background(), Nil, Nil)
	require.Nil(t, err)
	require.Equal(t, NewInt(2), result)
}

func TestFromGoValueRejectsUnknownTypes(t *testing.T) {
	_, err := FromGoValue(struct{ X int }{1})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "cannot convert")
}

func TestAsObjects(t *testing.T) {
	objs, err := AsObjects(map[string]interface{}{
		"count": 3,
		"name":  "elda",
	})
	require.Nil(t, err)
	require.Equal(t, NewInt(3), objs["count"])
	require.Equal(t, NewString("elda"), objs["name"])
}

func TestAsObjectsNamesBadVariable(t *testing.T) {
	_, err := AsObjects(map[string]interface{}{"bad": make(chan int)})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), `"bad"`)
}
