package icons

import (
	"strings"
	"testing"
)

func TestLucideNameCoversCatalog(t *testing.T) {
	for _, def := range Catalog() {
		name, ok := LucideName(def.ID)
		if !ok {
			t.Fatalf("missing Lucide mapping for %s", def.ID)
		}
		if _, ok := lucideBodies[name]; !ok {
			t.Fatalf("missing sprite body for %s (%s)", def.ID, name)
		}
	}
}

func TestLucideSpriteContainsSymbols(t *testing.T) {
	sprite := LucideSprite()
	for _, def := range Catalog() {
		symbol := `id="` + LucideSymbolID(LucideNameOrDefault(def.ID)) + `"`
		if !strings.Contains(sprite, symbol) {
			t.Fatalf("sprite missing %s", symbol)
		}
	}
}

func TestLucideNameOrDefault(t *testing.T) {
	if got := LucideNameOrDefault("unknown"); got != defaultLucideName {
		t.Fatalf("LucideNameOrDefault() = %q, want %q", got, defaultLucideName)
	}
}

func TestLookup(t *testing.T) {
	def, ok := Lookup(" cart ")
	if !ok || def.Name != "Cart" {
		t.Fatalf("Lookup(cart) = %+v, %v", def, ok)
	}
	if _, ok := Lookup("missing"); ok {
		t.Fatalf("Lookup(missing) ok = true")
	}
}
