package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
	"go.trai.ch/reuse/internal/ui/output"
	"go.trai.ch/reuse/internal/ui/style"
)

var _ progrock.Writer = (*Printer)(nil)

// Printer is a progrock.Writer that prints one line for every vertex as it finishes.
type Printer struct {
	mu       sync.Mutex
	w        io.Writer
	finished map[string]struct{}

	done   lipgloss.Style
	cached lipgloss.Style
	failed lipgloss.Style
}

// NewPrinter creates a new Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := output.NewRenderer(w)
	return &Printer{
		w:        w,
		finished: make(map[string]struct{}),
		done:     r.NewStyle().Foreground(style.Green),
		cached:   r.NewStyle().Foreground(style.Slate),
		failed:   r.NewStyle().Foreground(style.Red),
	}
}

// WriteStatus prints the vertices of update that completed since the last update.
func (p *Printer) WriteStatus(update *progrock.StatusUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Completed == nil {
			continue
		}
		if _, ok := p.finished[v.Id]; ok {
			continue
		}
		p.finished[v.Id] = struct{}{}

		if _, err := fmt.Fprintln(p.w, p.line(v)); err != nil {
			return err
		}
	}
	return nil
}

// Close does nothing. The underlying writer is owned by the caller.
func (p *Printer) Close() error {
	return nil
}

func (p *Printer) line(v *progrock.Vertex) string {
	switch {
	case v.Error != nil:
		return p.failed.Render(style.Cross) + " " + v.Name + ": " + *v.Error
	case v.Cached:
		return p.cached.Render(style.Tilde) + " " + v.Name + " " + p.cached.Render("(cached)")
	default:
		return p.done.Render(style.Check) + " " + v.Name
	}
}
