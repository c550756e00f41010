package console

import (
	"fmt"
	"io"
	"sync"

	"rpc-lab/domain"

	"github.com/gookit/color"
)

// Printer displays chat messages, one per line, prefixed by their sender.
// Messages sent under the local identity are rendered differently.
type Printer struct {
	mu       sync.Mutex
	out      io.Writer
	identity string
	colours  bool
}

func NewPrinter(out io.Writer, identity string, colours bool) *Printer {
	return &Printer{out: out, identity: identity, colours: colours}
}

func (p *Printer) Display(msg domain.ChatMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sender := msg.Sender
	if p.colours {
		style := color.New(color.FgCyan, color.OpBold)
		if msg.Sender == p.identity {
			style = color.New(color.FgGreen)
		}
		sender = style.Render(sender)
	}
	_, err := fmt.Fprintf(p.out, "%s: %s\n", sender, msg.Payload)
	return err
}

// Printf writes a free-form line, used for the non-chat parts of a run.
func (p *Printer) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}
