package locale

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewMatchesSupportedLanguages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want language.Tag
	}{
		{"", language.Spanish},
		{"es", language.Spanish},
		{"es-MX", language.Spanish},
		{"en", language.English},
		{"en-AU", language.English},
		{"not a tag", language.Spanish},
	}
	for _, tt := range tests {
		got := New(tt.in).Tag()
		base, _ := got.Base()
		wantBase, _ := tt.want.Base()
		require.Equal(t, wantBase, base, "input %q", tt.in)
	}
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	es := New("es")
	require.Equal(t, "Listado", es.T(TabList))
	require.Equal(t, "Artesano", es.T(KindArtisan))
	require.Equal(t, "Sin resultados para «barro».", es.T(MsgNoMatches, "barro"))

	en := New("en")
	require.Equal(t, "Map", en.T(TabMap))
	require.Equal(t, "3 items", en.T(MsgItemsCount, 3))
}

func TestZeroTranslatorDefaultsToSpanish(t *testing.T) {
	t.Parallel()

	var tr Translator
	require.Equal(t, "Mapa", tr.T(TabMap))
}

func TestEveryKeyTranslated(t *testing.T) {
	t.Parallel()

	for k := range messages[language.Spanish] {
		_, ok := messages[language.English][k]
		require.True(t, ok, "missing english string for %s", k)
	}
	require.Len(t, messages[language.English], len(messages[language.Spanish]))
}
