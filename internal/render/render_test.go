// SPDX-License-Identifier: MPL-2.0

package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/invowk/globentries/internal/config"
	"github.com/invowk/globentries/pkg/globentry"
	"github.com/invowk/globentries/pkg/types"
)

var sampleEntries = globentry.EntryMap{
	"pages/index":     "src/pages/index.js",
	"about":           "src/about.js",
	"pages/blog/[id]": "src/pages/blog/[id].js",
}

func TestEntries_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Entries(&buf, sampleEntries, Options{Format: config.FormatText, Plain: true}); err != nil {
		t.Fatalf("Entries() error: %v", err)
	}

	want := "" +
		"about           -> src/about.js\n" +
		"pages/blog/[id] -> src/pages/blog/[id].js\n" +
		"pages/index     -> src/pages/index.js\n"
	if buf.String() != want {
		t.Errorf("text output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestEntries_DefaultFormatIsText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Entries(&buf, globentry.EntryMap{"a": "a.js"}, Options{Plain: true}); err != nil {
		t.Fatalf("Entries() error: %v", err)
	}
	if buf.String() != "a -> a.js\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestEntries_Empty(t *testing.T) {
	t.Parallel()

	var text, js bytes.Buffer
	if err := Entries(&text, globentry.EntryMap{}, Options{Plain: true}); err != nil {
		t.Fatal(err)
	}
	if text.Len() != 0 {
		t.Errorf("text output for empty map = %q, want empty", text.String())
	}
	if err := Entries(&js, globentry.EntryMap{}, Options{Format: config.FormatJSON}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(js.String()) != "{}" {
		t.Errorf("json output for empty map = %q", js.String())
	}
}

func TestEntries_StructuredFormats(t *testing.T) {
	t.Parallel()

	decoders := map[config.OutputFormat]func([]byte, any) error{
		config.FormatJSON: json.Unmarshal,
		config.FormatYAML: yaml.Unmarshal,
		config.FormatTOML: toml.Unmarshal,
	}

	for format, decode := range decoders {
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := Entries(&buf, sampleEntries, Options{Format: format}); err != nil {
				t.Fatalf("Entries() error: %v", err)
			}

			var got map[string]string
			if err := decode(buf.Bytes(), &got); err != nil {
				t.Fatalf("decode %s output: %v\n%s", format, err, buf.String())
			}
			if len(got) != len(sampleEntries) {
				t.Fatalf("decoded %d entries, want %d", len(got), len(sampleEntries))
			}
			for id, path := range sampleEntries {
				if got[id.String()] != path.String() {
					t.Errorf("%s: %q = %q, want %q", format, id, got[id.String()], path)
				}
			}
		})
	}
}

func TestEntries_JSONIsSortedAndUnescaped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Entries(&buf, globentry.EntryMap{"b": "b.js", "a<x>": "a.js"}, Options{Format: config.FormatJSON}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Index(out, `"a<x>"`) > strings.Index(out, `"b"`) || strings.Index(out, `"a<x>"`) < 0 {
		t.Errorf("keys not sorted or HTML-escaped:\n%s", out)
	}
}

func TestEntries_Markdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Entries(&buf, sampleEntries, Options{Format: config.FormatMarkdown, Plain: true}); err != nil {
		t.Fatalf("Entries() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Entry", "Path", "pages/index", "src/about.js"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownTable(t *testing.T) {
	t.Parallel()

	got := markdownTable([]row{{key: "a|b", value: "x.js"}}, [2]string{"Entry", "Path"})
	want := "| Entry | Path |\n|---|---|\n| `a\\|b` | `x.js` |\n"
	if got != want {
		t.Errorf("markdownTable() = %q, want %q", got, want)
	}
}

func TestEntries_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Entries(&bytes.Buffer{}, sampleEntries, Options{Format: "xml"})
	if !errors.Is(err, config.ErrInvalidOutputFormat) {
		t.Errorf("error = %v, want ErrInvalidOutputFormat", err)
	}
}

func TestRoots(t *testing.T) {
	t.Parallel()

	patterns := []types.GlobPattern{"src/**/*.js", "*.ts"}
	roots := []types.FilesystemPath{"src", "."}

	var text bytes.Buffer
	if err := Roots(&text, patterns, roots, Options{Plain: true}); err != nil {
		t.Fatalf("Roots() error: %v", err)
	}
	want := "src/**/*.js -> src\n*.ts        -> .\n"
	if text.String() != want {
		t.Errorf("text output = %q, want %q", text.String(), want)
	}

	var js bytes.Buffer
	if err := Roots(&js, patterns, roots, Options{Format: config.FormatJSON}); err != nil {
		t.Fatalf("Roots() error: %v", err)
	}
	var doc struct {
		Roots []RootRow `json:"roots"`
	}
	if err := json.Unmarshal(js.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Roots) != 2 || doc.Roots[0] != (RootRow{Pattern: "src/**/*.js", Root: "src"}) {
		t.Errorf("json roots = %+v", doc.Roots)
	}

	var tm bytes.Buffer
	if err := Roots(&tm, patterns, roots, Options{Format: config.FormatTOML}); err != nil {
		t.Fatalf("Roots() toml error: %v", err)
	}
	if err := toml.Unmarshal(tm.Bytes(), &doc); err != nil || len(doc.Roots) != 2 {
		t.Errorf("toml roots = %+v, %v", doc.Roots, err)
	}

	if err := Roots(&bytes.Buffer{}, patterns, roots[:1], Options{}); !errors.Is(err, ErrMismatchedRoots) {
		t.Errorf("mismatched lengths error = %v", err)
	}
}
