package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Progress shows a spinner on w while a long call runs. A quiet Progress
// prints nothing.
type Progress struct {
	s *spinner.Spinner
	w io.Writer
}

// StartProgress starts a spinner with the given suffix unless quiet is set.
func StartProgress(w io.Writer, quiet bool, suffix string) *Progress {
	if quiet {
		return &Progress{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix
	s.Start()
	return &Progress{s: s, w: w}
}

// Update replaces the spinner suffix.
func (p *Progress) Update(suffix string) {
	if p.s == nil {
		return
	}
	p.s.Lock()
	p.s.Suffix = " " + suffix
	p.s.Unlock()
}

// Stop stops the spinner. A non-nil err prints a failure marker.
func (p *Progress) Stop(err error) {
	if p.s == nil {
		return
	}
	p.s.Stop()
	if err != nil {
		fmt.Fprintf(p.w, "%s\n", text.FgRed.Sprint("❌ Command failed"))
	}
}
