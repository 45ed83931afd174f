package namespace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willowmere/scribe/object"
)

func TestMapResolve(t *testing.T) {
	ns := Map{"limit": object.NewInt(10)}
	obj, ok := ns.Resolve("limit")
	require.True(t, ok)
	require.Equal(t, object.NewInt(10), obj)

	_, ok = ns.Resolve("missing")
	require.False(t, ok)
}

func TestChainResolvesFirstHit(t *testing.T) {
	locals := Map{"x": object.NewInt(1)}
	globals := Map{"x": object.NewInt(2), "y": object.NewInt(3)}
	chain := Chain{locals, globals}

	obj, ok := chain.Resolve("x")
	require.True(t, ok)
	require.Equal(t, object.NewInt(1), obj)

	obj, ok = chain.Resolve("y")
	require.True(t, ok)
	require.Equal(t, object.NewInt(3), obj)

	_, ok = chain.Resolve("z")
	require.False(t, ok)
}

type character struct {
	name   string
	health int
}

func characterRep() *Representation {
	return NewRepresentation("character").
		Attr("name", func(host interface{}) (object.Object, error) {
			return object.NewString(host.(*character).name), nil
		}).
		Attr("health", func(host interface{}) (object.Object, error) {
			return object.NewInt(int64(host.(*character).health)), nil
		}).
		Method("heal", func(ctx context.Context, host interface{}, args ...object.Object) (object.Object, error) {
			c := host.(*character)
			amount := args[0].(*object.Int).Value()
			c.health += int(amount)
			return object.NewInt(int64(c.health)), nil
		})
}

func TestRepresentationExposesDeclaredNames(t *testing.T) {
	rep := characterRep()
	require.Equal(t, "character", rep.Kind())
	require.Equal(t, []string{"heal", "health", "name"}, rep.Names())
}

func TestHostObjectAttributes(t *testing.T) {
	hero := &character{name: "elda", health: 7}
	wrapped := characterRep().Wrap(hero)

	obj, ok := wrapped.GetAttr("health")
	require.True(t, ok)
	require.Equal(t, object.NewInt(7), obj)

	obj, ok = wrapped.GetAttr("name")
	require.True(t, ok)
	require.Equal(t, object.NewString("elda"), obj)
}

// The capability table is closed: fields of the host struct that are not
// declared simply do not exist for scripts.
func TestHostObjectHidesUndeclaredNames(t *testing.T) {
	wrapped := NewRepresentation("character").
		Attr("name", func(host interface{}) (object.Object, error) {
			return object.NewString(host.(*character).name), nil
		}).
		Wrap(&character{name: "elda", health: 7})

	_, ok := wrapped.GetAttr("health")
	require.False(t, ok)
	_, ok = wrapped.GetAttr("heal")
	require.False(t, ok)
}

func TestBoundMethodMutatesHost(t *testing.T) {
	hero := &character{name: "elda", health: 5}
	wrapped := characterRep().Wrap(hero)

	obj, ok := wrapped.GetAttr("heal")
	require.True(t, ok)
	heal, ok := obj.(object.Callable)
	require.True(t, ok)

	result, err := heal.Call(context.Background(), object.NewInt(3))
	require.Nil(t, err)
	require.Equal(t, object.NewInt(8), result)
	require.Equal(t, 8, hero.health)
}

func TestHostObjectEquality(t *testing.T) {
	hero := &character{name: "elda"}
	rep := characterRep()
	require.True(t, rep.Wrap(hero).Equals(rep.Wrap(hero)))
	require.False(t, rep.Wrap(hero).Equals(rep.Wrap(&character{name: "elda"})))
	require.False(t, rep.Wrap(hero).Equals(object.Nil))
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	require.Nil(t, reg.Register(characterRep()))

	rep, ok := reg.Lookup("character")
	require.True(t, ok)
	require.Equal(t, "character", rep.Kind())

	_, ok = reg.Lookup("item")
	require.False(t, ok)

	wrapped, err := reg.Wrap("character", &character{name: "elda", health: 3})
	require.Nil(t, err)
	require.Equal(t, object.HOST, wrapped.Type())

	_, err = reg.Wrap("item", struct{}{})
	require.NotNil(t, err)
}

func TestRegistryRejectsDuplicateKind(t *testing.T) {
	reg := NewRegistry()
	require.Nil(t, reg.Register(characterRep()))
	err := reg.Register(NewRepresentation("character"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "already registered")
}
