package grammar

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Command delegates grammar checks to a long-lived external parser process.
//
// The protocol is line based: one sentence per request line, and one
// response line holding "." for a statement, "?" for a question, or
// anything else (conventionally "-") to reject.
//
// A process that fails a read or write is dropped and the next Prepare starts
// a fresh one. A process found dead by Prepare is reported as an error first.
type Command struct {
	name string
	args []string

	mu     sync.Mutex
	cmd    *exec.Cmd
	in     io.WriteCloser
	stdout *os.File
	out    *bufio.Reader
	done   chan struct{}
}

// NewCommand returns a filter that will run name with args once prepared.
func NewCommand(name string, args ...string) *Command {
	return &Command{name: name, args: args}
}

// Prepare starts the process. Calling it on a running filter is a no-op.
// If the running process has exited, Prepare returns an error and leaves the
// filter ready to start again.
func (c *Command) Prepare(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cmd != nil {
		select {
		case <-c.done:
			c.teardown()
			return fmt.Errorf("grammar command %s exited", c.name)
		default:
			return nil
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.Command(c.name, c.args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("grammar command stdin: %w", err)
	}
	// our own pipe, so Wait never closes the read end under a pending read
	pr, pw, err := os.Pipe()
	if err != nil {
		_ = stdin.Close()
		return fmt.Errorf("grammar command stdout: %w", err)
	}
	cmd.Stdout = pw
	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		_ = pr.Close()
		_ = pw.Close()
		return fmt.Errorf("start grammar command %s: %w", c.name, err)
	}
	_ = pw.Close()

	c.cmd = cmd
	c.in = stdin
	c.stdout = pr
	c.out = bufio.NewReader(pr)
	c.done = make(chan struct{})
	go func(done chan struct{}) {
		_ = cmd.Wait()
		close(done)
	}(c.done)
	log.Debugf("Started grammar command %s (pid %d)", c.name, cmd.Process.Pid)
	return nil
}

type reply struct {
	line string
	err  error
}

// Accept implements Filter. A cancelled ctx interrupts a pending answer and
// drops the process, since its next line would belong to this sentence.
func (c *Command) Accept(ctx context.Context, sentences []string) ([]Accepted, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cmd == nil {
		return nil, ErrNotStarted
	}

	var out []Accepted
	for _, s := range sentences {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		line, err := c.ask(ctx, s)
		if err != nil {
			c.teardown()
			return out, err
		}
		switch strings.TrimSpace(line) {
		case ".":
			out = append(out, Accepted{Sentence: s, Punct: Period})
		case "?":
			out = append(out, Accepted{Sentence: s, Punct: Question})
		}
	}
	return out, nil
}

// ask sends one sentence and waits for its answer line or for ctx.
func (c *Command) ask(ctx context.Context, s string) (string, error) {
	if _, err := io.WriteString(c.in, s+"\n"); err != nil {
		return "", fmt.Errorf("write to grammar command: %w", err)
	}
	ch := make(chan reply, 1)
	go func(r *bufio.Reader) {
		line, err := r.ReadString('\n')
		ch <- reply{line, err}
	}(c.out)
	select {
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("read from grammar command: %w", r.err)
		}
		return r.line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close stops the process if running.
func (c *Command) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardown()
	return nil
}

// teardown kills the process and forgets it. Callers hold mu.
func (c *Command) teardown() {
	if c.cmd == nil {
		return
	}
	_ = c.in.Close()
	_ = c.cmd.Process.Kill()
	<-c.done
	// unblocks a reader left behind by a cancelled ask
	_ = c.stdout.Close()
	c.cmd = nil
	c.in = nil
	c.stdout = nil
	c.out = nil
	c.done = nil
}
