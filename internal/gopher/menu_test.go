package gopher

import "testing"

func TestParseMenu(t *testing.T) {
	raw := "iwelcome\t\tnull.host\t70\r\n" +
		"1the lawn\t/lawn\tbitreich.org\t70\r\n" +
		"0a text file\t/file.txt\texample.com\t70\r\n" +
		"7search\t/v2/vs\tgopher.floodgap.com\t70\r\n" +
		".\r\n"

	lines := ParseMenu(raw)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}

	if lines[0].Type != Info || lines[0].Text != "welcome" {
		t.Fatalf("unexpected info line: %+v", lines[0])
	}
	if lines[1].Type != Menu || lines[1].Selector != "/lawn" || lines[1].Host != "bitreich.org" || lines[1].Port != 70 {
		t.Fatalf("unexpected menu line: %+v", lines[1])
	}
	if lines[2].Type != Text {
		t.Fatalf("unexpected text line: %+v", lines[2])
	}
	if lines[3].Type != Search {
		t.Fatalf("unexpected search line: %+v", lines[3])
	}
	if lines[4].Type != Info || lines[4].Text != "" {
		t.Fatalf("terminator should fold to blank info line: %+v", lines[4])
	}
}

func TestParseMenu_LenientPerLine(t *testing.T) {
	raw := "this line has no tabs\n" +
		"1good\t/sel\thost.example\t70\n" +
		"zbogus type\t/sel\thost.example\t70\n" +
		"1no port\t/sel\thost.example\n"

	lines := ParseMenu(raw)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0].Type != Info || lines[0].Text != "this line has no tabs" {
		t.Fatalf("raw text should fold to info: %+v", lines[0])
	}
	if lines[1].Type != Menu {
		t.Fatalf("valid line after bad line should parse: %+v", lines[1])
	}
	if lines[2].Type != Info || lines[2].Text != "zbogus type\t/sel\thost.example\t70" {
		t.Fatalf("unknown type should fold whole line to info: %+v", lines[2])
	}
	if lines[3].Type != Menu || lines[3].Port != 70 {
		t.Fatalf("missing port should default: %+v", lines[3])
	}
}

func TestParseMenu_LineEndings(t *testing.T) {
	for _, raw := range []string{"ia\nib", "ia\r\nib", "ia\rib"} {
		lines := ParseMenu(raw)
		if len(lines) != 2 {
			t.Fatalf("ParseMenu(%q): expected 2 lines, got %d", raw, len(lines))
		}
		if lines[0].Text != "a" || lines[1].Text != "b" {
			t.Fatalf("ParseMenu(%q): %+v", raw, lines)
		}
	}
}

func TestParseMenu_Empty(t *testing.T) {
	if lines := ParseMenu(""); len(lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(lines))
	}
}

func TestMenuLine_URL(t *testing.T) {
	ml := MenuLine{Type: Menu, Text: "lawn", Selector: "/lawn", Host: "bitreich.org", Port: 70}
	if got, want := ml.URL(), "gopher://bitreich.org/1/lawn"; got != want {
		t.Fatalf("URL() = %q, want %q", got, want)
	}

	ext := MenuLine{Type: HTML, Text: "web", Selector: "URL:https://example.com/page"}
	if got, want := ext.URL(), "https://example.com/page"; got != want {
		t.Fatalf("URL() = %q, want %q", got, want)
	}
}

func FuzzParseMenu(f *testing.F) {
	f.Add("1menu\t/sel\thost\t70\n.\n")
	f.Add("iinfo only")
	f.Add("")
	f.Add(".\r\n")
	f.Add("\x00\xff\t\t\t\t\t")
	f.Fuzz(func(t *testing.T, raw string) {
		for _, line := range ParseMenu(raw) {
			// Totality: every record either carries a destination or
			// is informational, and ports are always positive.
			if line.Port < 0 {
				t.Fatalf("negative port: %+v", line)
			}
			if !line.IsLink() && !line.Type.IsInfo() {
				t.Fatalf("line neither link nor info: %+v", line)
			}
		}
	})
}
