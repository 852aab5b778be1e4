// Package locale holds the user-facing strings. Spanish is the default;
// English is available through ui.locale = "en".
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a translatable message.
type Key string

const (
	TabList           Key = "tab.list"
	TabMap            Key = "tab.map"
	KindArtisan       Key = "kind.artisan"
	KindPlace         Key = "kind.place"
	MsgLoading        Key = "msg.loading"
	MsgLoadFailed     Key = "msg.load_failed"
	MsgFallbackBanner Key = "msg.fallback_banner"
	MsgEmpty          Key = "msg.empty"
	MsgNoMatches      Key = "msg.no_matches"
	MsgMapUnavailable Key = "msg.map_unavailable"
	MsgMapUnavailHint Key = "msg.map_unavailable_hint"
	MsgSearchPrompt   Key = "msg.search_prompt"
	MsgItemsCount     Key = "msg.items_count"
	HelpNavigate      Key = "help.navigate"
	HelpSwitchTab     Key = "help.switch_tab"
	HelpRefresh       Key = "help.refresh"
	HelpSearch        Key = "help.search"
	HelpQuit          Key = "help.quit"
)

var supported = []language.Tag{language.Spanish, language.English}

var messages = map[language.Tag]map[Key]string{
	language.Spanish: {
		TabList:           "Listado",
		TabMap:            "Mapa",
		KindArtisan:       "Artesano",
		KindPlace:         "Lugar",
		MsgLoading:        "Cargando…",
		MsgLoadFailed:     "No se pudieron cargar los datos. Intenta de nuevo más tarde.",
		MsgFallbackBanner: "Sin conexión con el servidor: mostrando datos de ejemplo.",
		MsgEmpty:          "No hay elementos para mostrar.",
		MsgNoMatches:      "Sin resultados para «%s».",
		MsgMapUnavailable: "El mapa no está disponible en este entorno.",
		MsgMapUnavailHint: "Consulta el listado para ver artesanos y lugares.",
		MsgSearchPrompt:   "Buscar: ",
		MsgItemsCount:     "%d elementos",
		HelpNavigate:      "mover",
		HelpSwitchTab:     "cambiar pestaña",
		HelpRefresh:       "recargar",
		HelpSearch:        "buscar",
		HelpQuit:          "salir",
	},
	language.English: {
		TabList:           "List",
		TabMap:            "Map",
		KindArtisan:       "Artisan",
		KindPlace:         "Place",
		MsgLoading:        "Loading…",
		MsgLoadFailed:     "Could not load the directory. Please try again later.",
		MsgFallbackBanner: "Server unreachable: showing offline sample data.",
		MsgEmpty:          "Nothing to show.",
		MsgNoMatches:      "No results for “%s”.",
		MsgMapUnavailable: "The map is not available in this environment.",
		MsgMapUnavailHint: "Use the list tab to browse artisans and places.",
		MsgSearchPrompt:   "Search: ",
		MsgItemsCount:     "%d items",
		HelpNavigate:      "move",
		HelpSwitchTab:     "switch tab",
		HelpRefresh:       "reload",
		HelpSearch:        "search",
		HelpQuit:          "quit",
	},
}

// Translator renders messages for one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New picks the closest supported language for a BCP 47 tag such as "es-MX".
// Unknown or empty tags fall back to Spanish.
func New(tag string) Translator {
	cat := catalog.NewBuilder(catalog.Fallback(language.Spanish))
	for lang, msgs := range messages {
		for k, v := range msgs {
			_ = cat.SetString(lang, string(k), v)
		}
	}
	matched := language.Spanish
	if parsed, err := language.Parse(tag); err == nil {
		_, idx, conf := language.NewMatcher(supported).Match(parsed)
		if conf != language.No {
			matched = supported[idx]
		}
	}
	return Translator{tag: matched, printer: message.NewPrinter(matched, message.Catalog(cat))}
}

// Tag returns the matched language.
func (t Translator) Tag() language.Tag { return t.tag }

// T formats key with args.
func (t Translator) T(key Key, args ...any) string {
	if t.printer == nil {
		return New("").T(key, args...)
	}
	return t.printer.Sprintf(string(key), args...)
}
