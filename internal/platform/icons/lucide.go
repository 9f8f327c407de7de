package icons

import (
	"sort"
	"strings"
)

const lucideSymbolPrefix = "lucide-"

const defaultLucideName = "circle-check"

var lucideIconNames = map[ID]string{
	IDCart:    "shopping-bag",
	IDWish:    "heart",
	IDClose:   "x",
	IDSuccess: "circle-check",
}

// Lucide path data, keyed by icon name.
var lucideBodies = map[string]string{
	"shopping-bag": `<path d="M6 2 3 6v14a2 2 0 0 0 2 2h14a2 2 0 0 0 2-2V6l-3-4Z"/><path d="M3 6h18"/><path d="M16 10a4 4 0 0 1-8 0"/>`,
	"heart":        `<path d="M19 14c1.49-1.46 3-3.21 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.76 0-3 .5-4.5 2-1.5-1.5-2.74-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4.05 3 5.5l7 7Z"/>`,
	"x":            `<path d="M18 6 6 18"/><path d="m6 6 12 12"/>`,
	"circle-check": `<circle cx="12" cy="12" r="10"/><path d="m9 12 2 2 4-4"/>`,
}

var lucideSprite = buildLucideSprite()

// LucideName returns the Lucide icon name for a core icon identifier.
func LucideName(id ID) (string, bool) {
	name, ok := lucideIconNames[id]
	return name, ok
}

// LucideNameOrDefault provides a stable Lucide name even when the icon ID is unknown.
func LucideNameOrDefault(id ID) string {
	if name, ok := lucideIconNames[id]; ok {
		return name
	}
	return defaultLucideName
}

// LucideSymbolID returns the sprite symbol ID for a Lucide icon name.
func LucideSymbolID(name string) string {
	return lucideSymbolPrefix + name
}

// LucideSprite returns the SVG sprite markup for core Lucide icons.
func LucideSprite() string {
	return lucideSprite
}

func buildLucideSprite() string {
	names := make([]string, 0, len(lucideBodies))
	for name := range lucideBodies {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" aria-hidden="true" style="display:none">`)
	for _, name := range names {
		b.WriteString(`<symbol id="`)
		b.WriteString(LucideSymbolID(name))
		b.WriteString(`" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round">`)
		b.WriteString(lucideBodies[name])
		b.WriteString(`</symbol>`)
	}
	b.WriteString(`</svg>`)
	return b.String()
}
