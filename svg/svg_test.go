package svg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const drawing = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200">
  <!-- a grid="x" comment -->
  <circle id="sun" cx="100" cy="100" r="20"/>
  <g ID = 'planets' data-id="nope">
    <circle id="earth" grid="3" cx="150" cy="100" r="5"/>
    <circle
        id="moon" cx="160" cy="100" r="2"/>
  </g>
  <text x="10" y="190">Órbita id</text>
  <circle id="sun" r="1"/>
</svg>
`

func TestScrapeBytes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.svg")
	defer teardown()
	//
	ids, err := ScrapeBytes([]byte(drawing))
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"sun", "planets", "earth", "moon"}
	if strings.Join(ids, " ") != strings.Join(expected, " ") {
		t.Errorf("expected ids %v, have %v", expected, ids)
	}
}

func TestScrapeMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.svg")
	defer teardown()
	//
	ids, err := ScrapeBytes([]byte(`<a id="x"/> <b title="unterminated`))
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != "x" {
		t.Errorf("expected [x], have %v", ids)
	}
}

func TestScrapeFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.svg")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "drawing.svg")
	if err := os.WriteFile(path, []byte(drawing), 0644); err != nil {
		t.Fatal(err)
	}
	ids, err := Scrape(path)
	if err != nil || len(ids) != 4 {
		t.Errorf("expected 4 ids from %s, have %v (%v)", path, ids, err)
	}
	if _, err = Scrape(path + ".missing"); err == nil {
		t.Errorf("expected error for missing file")
	}
}
