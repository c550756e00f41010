// Package console is the terminal side of the clients and of the server
// operator: reading typed lines and printing what comes back.
package console

import (
	"bufio"
	stderrors "errors"
	"io"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// Lines yields the lines of r, without their terminator, until EOF.
// Lines have no length limit. A read error is logged and ends the sequence.
func Lines(log *slog.Logger, r io.Reader) iter.Seq[string] {
	return func(yield func(string) bool) {
		reader := bufio.NewReader(r)
		for {
			line, err := reader.ReadString('\n')
			if line != "" || err == nil {
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				if !yield(line) {
					return
				}
			}
			if err != nil {
				if !stderrors.Is(err, io.EOF) {
					log.Error("Console input failed, no more lines will be read", "error", err)
				}
				return
			}
		}
	}
}

// Prompt yields the lines typed at an interactive prompt until Ctrl-D or Ctrl-C.
func Prompt(rl *readline.Instance) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, err := rl.Readline()
			if err != nil {
				// io.EOF on Ctrl-D, readline.ErrInterrupt on Ctrl-C
				return
			}
			if !yield(line) {
				return
			}
		}
	}
}

// Input is where typed lines come from and where the replies go to.
type Input struct {
	Lines  iter.Seq[string]
	Output io.Writer
	close  func() error
}

func (i *Input) Close() error {
	err := i.close()
	if stderrors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}

// OpenStdin reads stdin through an interactive prompt when it is a terminal,
// and line by line otherwise (pipes, redirected files).
func OpenStdin(log *slog.Logger, prompt string) (*Input, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return &Input{
			Lines:  Lines(log, os.Stdin),
			Output: os.Stdout,
			close:  func() error { return nil },
		}, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return &Input{
		Lines:  Prompt(rl),
		Output: rl.Stdout(),
		close:  rl.Close,
	}, nil
}
