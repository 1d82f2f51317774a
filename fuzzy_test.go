package dawgo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// TestDAWG_SimilarKeys_S5 exercises spec scenario S5: replacement table
// {"Е":"Ё"} over a Cyrillic source set.
func TestDAWG_SimilarKeys_S5(t *testing.T) {
	t.Parallel()

	source := []string{
		"ЁЖИК", "ЁЖИКЕ", "ЁЖ", "ДЕРЕВНЯ", "ДЕРЁВНЯ", "ЕМ", "ОЗЕРА", "ОЗЁРА", "ОЗЕРО",
	}
	data := fixtureDictOnly(source)
	d := &DAWG{oc: openFixtureContainer(data, openSpec{})}

	table, err := CompileReplaces(map[string]string{"Е": "Ё"})
	require.NoError(t, err)

	got, err := d.SimilarKeys("ДЕРЕВНЯ", table)
	require.NoError(t, err)
	// Table substitutions are tried before the literal byte at each
	// position (§4.6), so the ДЕ[Р]Е->ДЕРЁ branch resolves before the
	// literal ДЕРЕ branch.
	if diff := cmp.Diff([]string{"ДЕРЁВНЯ", "ДЕРЕВНЯ"}, got); diff != "" {
		t.Errorf("SimilarKeys(\"ДЕРЕВНЯ\") mismatch (-want +got):\n%s", diff)
	}

	got, err = d.SimilarKeys("ЕЖ", table)
	require.NoError(t, err)
	require.Equal(t, []string{"ЁЖ"}, got)

	got, err = d.SimilarKeys("УЖ", table)
	require.NoError(t, err)
	require.Empty(t, got)
}

// TestCompileReplaces_S6 exercises spec scenario S6: a replacement table
// whose value also appears as a key must be rejected.
func TestCompileReplaces_S6(t *testing.T) {
	t.Parallel()

	_, err := CompileReplaces(map[string]string{"air": "bear", "bear": "air"})
	require.ErrorIs(t, err, ErrInvalidReplaceTable)
}

func TestDAWG_SimilarKeys_NilTable_IsIdentityOnly(t *testing.T) {
	t.Parallel()

	data := fixtureDictOnly([]string{"foo", "bar"})
	d := &DAWG{oc: openFixtureContainer(data, openSpec{})}

	got, err := d.SimilarKeys("foo", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"foo"}, got)

	got, err = d.SimilarKeys("baz", nil)
	require.NoError(t, err)
	require.Empty(t, got)
}
