package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	t.Parallel()

	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if !bundle.HasLocale(BaseLocale) {
		t.Fatalf("expected base locale %s", BaseLocale)
	}
	if !bundle.HasLocale("pt-BR") {
		t.Fatalf("expected locale pt-BR")
	}
	if got := len(bundle.NamespaceMessages("en-US", "storefront")); got == 0 {
		t.Fatalf("expected en-US storefront namespace messages")
	}
}

func TestEmbeddedLocalesDefineTheSameKeys(t *testing.T) {
	t.Parallel()

	bundle := Default()
	base := bundle.NamespaceMessages(BaseLocale, "storefront")
	for _, locale := range bundle.Locales() {
		messages := bundle.NamespaceMessages(locale, "storefront")
		for key := range base {
			if _, ok := messages[key]; !ok {
				t.Fatalf("locale %s missing key %q", locale, key)
			}
		}
	}
}

func TestPrinterFormatsLocalizedMessages(t *testing.T) {
	t.Parallel()

	bundle := Default()
	en := bundle.Printer(language.MustParse("en-US"))
	if got := en.Sprintf("storefront.featured.cart.description", "Linen Shirt"); got != "Linen Shirt has been added to your cart." {
		t.Fatalf("en-US description = %q", got)
	}
	pt := bundle.Printer(language.MustParse("pt-BR"))
	if got := pt.Sprintf("storefront.featured.discount", 20); got != "20% DE DESCONTO" {
		t.Fatalf("pt-BR discount = %q", got)
	}
}

func TestMatchAcceptLanguage(t *testing.T) {
	t.Parallel()

	bundle := Default()
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: "en-US"},
		{header: "pt-BR,pt;q=0.9", want: "pt-BR"},
		{header: "pt", want: "pt-BR"},
		{header: "fr-FR,fr;q=0.9", want: "en-US"},
		{header: "not a header;;", want: "en-US"},
	}
	for _, tt := range tests {
		if got := bundle.Match(tt.header).String(); got != tt.want {
			t.Fatalf("Match(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	t.Parallel()

	bundle := Default()
	value, ok := bundle.Message("fr-FR", "storefront.featured.heading")
	if !ok || value != "Featured Product" {
		t.Fatalf("Message(fr-FR) = %q, %t", value, ok)
	}
	if _, ok := bundle.Message("en-US", "storefront.missing"); ok {
		t.Fatal("expected missing key")
	}
}

func TestLoadFromFSRejectsKeyOutsideNamespace(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/storefront.yaml"), `locale: "en-US"
namespace: "storefront"
messages:
  "checkout.bad": "nope"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected namespace prefix error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/storefront.yaml"), `locale: "pt-BR"
namespace: "storefront"
messages:
  "storefront.a": "a"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-BR/storefront.yaml"), `locale: "pt-BR"
namespace: "storefront"
messages:
  "storefront.a": "a"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
