package builtins

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/willowmere/scribe/namespace"
	"github.com/willowmere/scribe/object"
)

func call(t *testing.T, ns namespace.Namespace, name string, args ...object.Object) (object.Object, error) {
	t.Helper()
	obj, ok := ns.Resolve(name)
	require.True(t, ok, "builtin %q not found", name)
	fn, ok := obj.(object.Callable)
	require.True(t, ok)
	return fn.Call(context.Background(), args...)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	ns := Namespace(Config{Output: &buf})
	result, err := call(t, ns, "print", object.NewString("hp"), object.NewInt(7), object.True)
	require.Nil(t, err)
	require.Equal(t, object.Nil, result)
	require.Equal(t, "hp 7 true\n", buf.String())
}

func TestStr(t *testing.T) {
	ns := Namespace(Config{})
	result, err := call(t, ns, "str", object.NewInt(42))
	require.Nil(t, err)
	require.Equal(t, object.NewString("42"), result)

	// Strings pass through without re-quoting.
	result, err = call(t, ns, "str", object.NewString("x"))
	require.Nil(t, err)
	require.Equal(t, object.NewString("x"), result)

	_, err = call(t, ns, "str")
	require.NotNil(t, err)
}

func TestInt(t *testing.T) {
	ns := Namespace(Config{})
	tests := []struct {
		in   object.Object
		want int64
	}{
		{object.NewInt(3), 3},
		{object.NewFloat(3.9), 3},
		{object.True, 1},
		{object.False, 0},
	}
	for _, tt := range tests {
		result, err := call(t, ns, "int", tt.in)
		require.Nil(t, err)
		require.Equal(t, object.NewInt(tt.want), result, tt.in.Inspect())
	}

	_, err := call(t, ns, "int", object.NewString("3"))
	require.NotNil(t, err)
}

func TestSleepSuspends(t *testing.T) {
	ns := Namespace(Config{})
	result, err := call(t, ns, "sleep", object.NewFloat(0.5))
	require.Nil(t, err)
	susp, ok := result.(*object.Suspension)
	require.True(t, ok)
	require.Equal(t, "sleep", susp.Reason)
	require.Equal(t, 500*time.Millisecond, susp.Payload)

	_, err = call(t, ns, "sleep", object.NewString("soon"))
	require.NotNil(t, err)
}

func TestSayFormatsAgainstVars(t *testing.T) {
	var buf bytes.Buffer
	vars := map[string]object.Object{
		"name": object.NewString("Mira"),
		"n":    object.NewInt(2),
	}
	ns := Namespace(Config{
		Output: &buf,
		Vars:   func() map[string]object.Object { return vars },
	})
	_, err := call(t, ns, "say", object.NewString("{name} has {n} {n:apple/apples}"))
	require.Nil(t, err)
	require.Equal(t, "Mira has 2 apples\n", buf.String())

	_, err = call(t, ns, "say", object.NewString("{missing}"))
	require.NotNil(t, err)
}

func TestSayAbsentWithoutVars(t *testing.T) {
	ns := Namespace(Config{})
	_, ok := ns.Resolve("say")
	require.False(t, ok)
}
