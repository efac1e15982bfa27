package helppage

import (
	"strings"
	"testing"

	"github.com/glabrego/burrow/internal/gopher"
)

func TestLookup_SelectorNormalization(t *testing.T) {
	for _, sel := range []string{"", "/", "home", "/home", "home/"} {
		title, raw, ok := Lookup(sel)
		if !ok {
			t.Fatalf("Lookup(%q) missed", sel)
		}
		if title != "Home" || raw == "" {
			t.Fatalf("Lookup(%q) = %q", sel, title)
		}
	}
	if _, _, ok := Lookup("no/such/page"); ok {
		t.Fatal("unknown selector should miss")
	}
}

func TestPages_ParseAsMenus(t *testing.T) {
	for _, sel := range []string{"home", "help", "help/keys", "help/nav", "help/types", "help/bookmarks", "help/history"} {
		_, raw, ok := Lookup(sel)
		if !ok {
			t.Fatalf("Lookup(%q) missed", sel)
		}
		lines := gopher.ParseMenu(raw)
		if len(lines) == 0 {
			t.Fatalf("page %q parsed to nothing", sel)
		}
		for _, line := range lines {
			if !line.Type.IsInfo() && !line.IsLink() {
				t.Fatalf("page %q has an unexpected line type: %+v", sel, line)
			}
		}
	}
}

func TestHomePage_LinksToInternalPages(t *testing.T) {
	_, raw, _ := Lookup("home")
	var internal int
	for _, line := range gopher.ParseMenu(raw) {
		if line.IsLink() && line.Host == gopher.InternalHost {
			internal++
			if u := line.URL(); !strings.HasPrefix(u, "gopher://burrow/") {
				t.Fatalf("internal link URL = %q", u)
			}
		}
	}
	if internal < 3 {
		t.Fatalf("home page should link help, bookmarks and history; found %d internal links", internal)
	}
}

func TestHelpPage_EveryLinkResolvesOrIsExternal(t *testing.T) {
	_, raw, _ := Lookup("help")
	for _, line := range gopher.ParseMenu(raw) {
		if !line.IsLink() || line.Host != gopher.InternalHost {
			continue
		}
		if _, _, ok := Lookup(line.Selector); !ok {
			t.Fatalf("help page links to missing internal page %q", line.Selector)
		}
	}
}
