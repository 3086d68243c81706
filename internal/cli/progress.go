package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/meigma/actpak"
)

// progressLine redraws a single status line from progress events.
type progressLine struct {
	w     io.Writer
	drawn bool
}

func newProgressLine(w io.Writer) *progressLine {
	return &progressLine{w: w}
}

// update redraws the line for ev.
func (p *progressLine) update(ev actpak.ProgressEvent) {
	line := fmt.Sprintf("%s %s", TitleStyle.Render(ev.Stage.String()), ev.Kind)
	if ev.FilesTotal > 0 {
		line += fmt.Sprintf(" %d/%d", ev.FilesDone, ev.FilesTotal)
	}
	if ev.BytesDone > 0 {
		line += " " + SubtitleStyle.Render(humanize.IBytes(ev.BytesDone))
	}
	fmt.Fprintf(p.w, "\r\x1b[2K%s", line)
	p.drawn = true
}

// done ends the line so later output starts on a fresh one.
func (p *progressLine) done() {
	if p.drawn {
		fmt.Fprintln(p.w)
		p.drawn = false
	}
}
