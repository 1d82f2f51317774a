package dawgo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// TestCompletionDAWG_S1 exercises spec scenario S1: source keys
// ["f","bar","foo","foobar"].
func TestCompletionDAWG_S1(t *testing.T) {
	t.Parallel()

	data := fixtureCompletion([]string{"f", "bar", "foo", "foobar"})
	d := &CompletionDAWG{base: completionBase{oc: openFixtureContainer(data, openSpec{guide: true})}}

	ok, err := d.Contains("foo")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = d.Contains("fo")
	require.NoError(t, err)
	require.False(t, ok)

	prefixes, err := d.Prefixes("foobarz")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"f", "foo", "foobar"}, prefixes); diff != "" {
		t.Errorf("Prefixes(%q) mismatch (-want +got):\n%s", "foobarz", diff)
	}

	keys, err := d.Keys("foo")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"foo", "foobar"}, keys); diff != "" {
		t.Errorf("Keys(%q) mismatch (-want +got):\n%s", "foo", diff)
	}
}

func TestCompletionDAWG_Keys_EmptyPrefix_ReturnsSortedFullSet(t *testing.T) {
	t.Parallel()

	source := []string{"foobar", "bar", "foo", "f"}
	data := fixtureCompletion(source)
	d := &CompletionDAWG{base: completionBase{oc: openFixtureContainer(data, openSpec{guide: true})}}

	keys, err := d.Keys("")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"bar", "f", "foo", "foobar"}, keys); diff != "" {
		t.Errorf("Keys(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestCompletionDAWG_Keys_UnknownPrefix_ReturnsEmpty(t *testing.T) {
	t.Parallel()

	data := fixtureCompletion([]string{"foo", "bar"})
	d := &CompletionDAWG{base: completionBase{oc: openFixtureContainer(data, openSpec{guide: true})}}

	keys, err := d.Keys("zzz")
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestCompletionDAWG_Close_IsIdempotent(t *testing.T) {
	t.Parallel()

	data := fixtureCompletion([]string{"foo"})
	d := &CompletionDAWG{base: completionBase{oc: openFixtureContainer(data, openSpec{guide: true})}}

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	_, err := d.Contains("foo")
	require.ErrorIs(t, err, ErrNotLoaded)
}
