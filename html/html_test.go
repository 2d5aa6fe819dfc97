package html

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/lidas/script"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var frames = []script.Frame{
	{Element: "sun", DelayMs: 500, Action: script.Show},
	{Element: "earth", Group: true, FirstInGroup: true, DelayMs: 200, HoldMs: 1000, Action: script.Show},
	{Element: "moon", Group: true, DelayMs: 200, HoldMs: 1000, Action: script.Show},
	{Element: "sun", DelayMs: 100, Action: script.Hide},
	{Element: "grid", DelayMs: 0, Action: script.Hide},
}

func TestSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.html")
	defer teardown()
	//
	steps := Steps(frames)
	if len(steps) != 4 {
		t.Fatalf("expected 4 steps, have %d", len(steps))
	}
	if strings.Join(steps[1].Elements, ",") != "earth,moon" || steps[1].HoldMs != 1000 {
		t.Errorf("expected group step [earth moon] holding 1000ms, have %v", steps[1])
	}
	if steps[2].Action != "hide" || steps[2].DelayMs != 100 {
		t.Errorf("expected sun to be hidden after 100ms, have %v", steps[2])
	}
	h := hidden(steps)
	if strings.Join(h, ",") != "sun,earth,moon" {
		t.Errorf("expected sun, earth and moon to start hidden, have %v", h)
	}
}

func TestWrite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.html")
	defer teardown()
	//
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><circle id="sun" r="20"/></svg>`
	var buf bytes.Buffer
	if err := Write(&buf, svg, frames, "Sol & Terra"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		svg,
		"<title>Sol &amp; Terra</title>",
		`"elements":["earth","moon"]`,
		`"action":"hide"`,
		`"hold":1000`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestWriteWithoutFrames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.html")
	defer teardown()
	//
	var buf bytes.Buffer
	if err := Write(&buf, "<svg/>", nil, "empty"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "null") {
		t.Errorf("expected empty step lists, have\n%s", buf.String())
	}
}
