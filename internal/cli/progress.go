package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"daidelog/internal/usecase"
)

// convertProgress draws conversion progress on w. The bar is created lazily
// because the number of logs is only known once the walk is done.
type convertProgress struct {
	mu      sync.Mutex
	w       io.Writer
	label   string
	bar     *progressbar.ProgressBar
	started time.Time
}

func newProgress(w io.Writer, label string) usecase.ProgressFunc {
	p := &convertProgress{w: w, label: label}
	return p.update
}

func (p *convertProgress) update(processed, total int, current string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		p.started = time.Now()
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionSetDescription("[cyan]"+p.label+"[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]#[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: ".",
				BarStart:      "|",
				BarEnd:        "|",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(p.w)
			}),
		)
	}

	desc := fmt.Sprintf("[cyan]%s[reset] %s", p.label, filepath.Base(current))
	if eta, ok := p.eta(processed, total); ok {
		desc += " ETA: " + formatDuration(eta)
	}
	p.bar.Describe(desc)
	_ = p.bar.Set(processed)
}

// eta extrapolates the remaining time from the average time per log so far.
func (p *convertProgress) eta(processed, total int) (time.Duration, bool) {
	if processed == 0 || processed >= total {
		return 0, false
	}
	perLog := time.Since(p.started) / time.Duration(processed)
	return perLog * time.Duration(total-processed), true
}

// formatDuration renders d at the two coarsest non-zero units.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "<1s"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
