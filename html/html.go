/*
Package html writes LiDAS animations as self-contained HTML pages.

The page embeds the SVG drawing and a small player script. The player
replays the frames of a program one step after the other: it waits for the
delay of a step, then shows or hides its elements. A step with a hold time
is reverted when the hold time has passed. Frames stemming from a group
form a single step.

Elements shown by the animation start out hidden.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"fmt"
	"html/template"
	"io"

	"github.com/npillmayer/lidas/script"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lidas.html'.
func tracer() tracing.Trace {
	return tracing.Select("lidas.html")
}

// Step is a unit of playback: one frame, or all the frames of a group.
type Step struct {
	Elements []string `json:"elements"`
	Action   string   `json:"action"`
	DelayMs  int      `json:"delay"`
	HoldMs   int      `json:"hold"`
}

// Steps merges frames into playback steps. Frames of a group follow the
// frame marked FirstInGroup and share its timing.
func Steps(frames []script.Frame) []Step {
	steps := make([]Step, 0, len(frames))
	for _, f := range frames {
		if f.Group && !f.FirstInGroup && len(steps) > 0 {
			last := &steps[len(steps)-1]
			last.Elements = append(last.Elements, f.Element)
			continue
		}
		steps = append(steps, Step{
			Elements: []string{f.Element},
			Action:   f.Action.String(),
			DelayMs:  f.DelayMs,
			HoldMs:   f.HoldMs,
		})
	}
	return steps
}

// hidden lists the elements which are first referenced by a show step.
func hidden(steps []Step) []string {
	seen := make(map[string]bool)
	var h []string
	for _, s := range steps {
		for _, e := range s.Elements {
			if seen[e] {
				continue
			}
			seen[e] = true
			if s.Action == script.Show.String() {
				h = append(h, e)
			}
		}
	}
	return h
}

type page struct {
	Title  string
	SVG    template.HTML
	Steps  []Step
	Hidden []string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; display: flex; justify-content: center; }
</style>
</head>
<body>
<div id="lidas-drawing">
{{.SVG}}
</div>
<script>
(function() {
  var steps = {{.Steps}};
  var hidden = {{.Hidden}};
  function set(ids, visible) {
    ids.forEach(function(id) {
      var el = document.getElementById(id);
      if (el) { el.style.visibility = visible ? "visible" : "hidden"; }
    });
  }
  set(hidden, false);
  function play(i) {
    if (i >= steps.length) { return; }
    var s = steps[i];
    setTimeout(function() {
      var show = s.action === "show";
      set(s.elements, show);
      if (s.hold > 0) {
        setTimeout(function() { set(s.elements, !show); play(i + 1); }, s.hold);
      } else {
        play(i + 1);
      }
    }, s.delay);
  }
  play(0);
})();
</script>
</body>
</html>
`))

// Write emits an HTML page showing svgText, animated by frames.
// svgText is embedded as is.
func Write(w io.Writer, svgText string, frames []script.Frame, title string) error {
	steps := Steps(frames)
	p := page{
		Title:  title,
		SVG:    template.HTML(svgText),
		Steps:  steps,
		Hidden: hidden(steps),
	}
	if p.Hidden == nil {
		p.Hidden = []string{}
	}
	tracer().Debugf("writing page %q with %d steps", title, len(steps))
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("html: %w", err)
	}
	return nil
}
