package directory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeKeepsArtisansBeforePlaces(t *testing.T) {
	t.Parallel()

	a1 := Item{ID: 1, Name: "A1", Lat: 20.06, Lng: -99.33}
	a2 := Item{ID: 2, Name: "A2", Lat: 20.05, Lng: -99.34}
	p1 := Item{ID: 1, Name: "P1", Lat: 20.06, Lng: -99.33}

	got, err := Merge([]Item{a1, a2}, []Item{p1})
	require.NoError(t, err)
	require.Equal(t, []TaggedItem{
		{Item: a1, Kind: KindArtisan},
		{Item: a2, Kind: KindArtisan},
		{Item: p1, Kind: KindPlace},
	}, got)
}

func TestMergeKeysUniqueAcrossOverlappingIDs(t *testing.T) {
	t.Parallel()

	artisans := []Item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}
	places := []Item{{ID: 1, Name: "x"}, {ID: 2, Name: "y"}}

	got, err := Merge(artisans, places)
	require.NoError(t, err)
	require.Len(t, got, 5)

	seen := map[string]bool{}
	for _, it := range got {
		require.False(t, seen[it.Key()], "duplicate key %s", it.Key())
		seen[it.Key()] = true
	}
	require.True(t, seen["Artisan:1"])
	require.True(t, seen["Place:1"])
}

func TestMergeEmptyInputs(t *testing.T) {
	t.Parallel()

	got, err := Merge(nil, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMergeRejectsUndisplayableRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		places []Item
	}{
		{"missing name", []Item{{ID: 7, Name: "  ", Lat: 1, Lng: 1}}},
		{"nan latitude", []Item{{ID: 7, Name: "x", Lat: math.NaN(), Lng: 1}}},
		{"longitude out of range", []Item{{ID: 7, Name: "x", Lat: 1, Lng: 181}}},
		{"infinite latitude", []Item{{ID: 7, Name: "x", Lat: math.Inf(1), Lng: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Merge([]Item{{ID: 1, Name: "ok"}}, tt.places)
			require.ErrorIs(t, err, ErrInvalidItem)
			require.Contains(t, err.Error(), "Place:7")
			require.Nil(t, got)
		})
	}
}

func TestSubtitlePrefersCategory(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Textiles", TaggedItem{Item: Item{Category: "Textiles", Type: "Mercado"}}.Subtitle())
	require.Equal(t, "Museo", TaggedItem{Item: Item{Type: "Museo"}}.Subtitle())
	require.Equal(t, "", TaggedItem{}.Subtitle())
}

func TestCloneItemsIsIndependent(t *testing.T) {
	t.Parallel()

	src := []Item{{ID: 1, Name: "a"}}
	cp := CloneItems(src)
	cp[0].Name = "changed"
	require.Equal(t, "a", src[0].Name)
	require.Nil(t, CloneItems(nil))
}
