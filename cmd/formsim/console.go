package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"cadastro/internal/form"
	"cadastro/internal/form/page"
)

// console serializes output from the command loop and from lookups finishing in the
// background.
type console struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsole(w io.Writer) *console {
	return &console{w: w}
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format, args...)
}

func (c *console) printResult(r form.Result) {
	if r.Outcome == form.OutcomeSkipped {
		return
	}
	line := fmt.Sprintf("lookup %s cep=%s outcome=%s", r.LookupID, r.PostalCode, r.Outcome)
	if r.Err != nil {
		line += " error=" + r.Err.Error()
	}
	c.printf("%s\n", line)
}

const usage = `commands:
  type <field> <text>   replace the field's text and fire textChanged
  set <field> <text>    replace the field's text without events
  blur <field>          fire focusLost
  show                  print every field
  check                 validate the submission
  wait                  wait for pending lookups
  quit
fields may omit the id_ prefix (cep, cpf, telefone, data_nascimento, ...)
`

// runCommands reads one command per line until quit, EOF or ctx is done.
func runCommands(ctx context.Context, in io.Reader, out *console, p *page.Memory, f *form.Form) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	out.printf("%s", usage)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if done := execute(ctx, strings.TrimSpace(line), out, p, f); done {
				return nil
			}
		}
	}
}

func execute(ctx context.Context, line string, out *console, p *page.Memory, f *form.Form) bool {
	if line == "" {
		return false
	}
	cmd, rest, _ := strings.Cut(line, " ")
	field, text, _ := strings.Cut(strings.TrimSpace(rest), " ")
	id := fieldID(field)

	var err error
	switch cmd {
	case "type":
		err = p.Type(ctx, id, text)
	case "set":
		if !p.SetValue(id, text) {
			err = fmt.Errorf("no field %s on page", id)
		}
	case "blur":
		err = p.Blur(ctx, id)
	case "show":
		snap := p.Snapshot()
		ids := make([]form.FieldID, 0, len(snap))
		for id := range snap {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			out.printf("%-20s %q\n", id, snap[id])
		}
	case "check":
		if err = f.Submission().Validate(); err == nil {
			out.printf("ok\n")
		}
	case "wait":
		f.Wait()
	case "quit", "exit":
		return true
	default:
		out.printf("%s", usage)
	}
	if err != nil {
		out.printf("error: %v\n", err)
	}
	return false
}

func fieldID(name string) form.FieldID {
	if name == "" || strings.HasPrefix(name, "id_") {
		return form.FieldID(name)
	}
	return form.FieldID("id_" + name)
}
