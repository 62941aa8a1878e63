package disambiguation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"animeseries/internal/services"
)

// ChoiceCreateNew is the menu number that always means create new.
const ChoiceCreateNew = 1

// Decider picks one option number from a menu.
type Decider interface {
	Choose(ctx context.Context, menu Menu) (int, error)
}

// Decider names accepted by New.
const (
	DeciderConsole   = "console"
	DeciderScripted  = "scripted"
	DeciderCreateNew = "create_new"
)

// New builds the named decider. The console decider reads in and writes out.
func New(name, scriptPath string, in io.Reader, out io.Writer) (Decider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DeciderConsole:
		return NewConsoleDecider(in, out), nil
	case DeciderScripted:
		return LoadScript(scriptPath)
	case DeciderCreateNew:
		return CreateNewDecider{}, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "disambiguation", "new decider", fmt.Sprintf("unknown decider %q", name), nil)
	}
}

// CreateNewDecider declines every candidate.
type CreateNewDecider struct{}

// Choose always returns ChoiceCreateNew.
func (CreateNewDecider) Choose(context.Context, Menu) (int, error) {
	return ChoiceCreateNew, nil
}

// ConsoleDecider renders menus to a terminal and reads one line per choice.
// A single goroutine owns the input; a line read while no menu is waiting
// answers the next menu.
type ConsoleDecider struct {
	reader   *bufio.Reader
	out      io.Writer
	colorize bool

	startOnce sync.Once
	lines     chan lineResult
}

// NewConsoleDecider wraps in and out. Colour is enabled when out is a terminal.
func NewConsoleDecider(in io.Reader, out io.Writer) *ConsoleDecider {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleDecider{
		reader:   bufio.NewReader(in),
		out:      out,
		colorize: isTerminal(out),
		lines:    make(chan lineResult),
	}
}

type lineResult struct {
	line string
	err  error
}

// Choose blocks until a line is read or ctx is done.
func (d *ConsoleDecider) Choose(ctx context.Context, menu Menu) (int, error) {
	fmt.Fprint(d.out, menu.Render(d.colorize))
	fmt.Fprintf(d.out, "Choice [1-%d]: ", len(menu.Options))

	d.startOnce.Do(func() { go d.readLines() })

	select {
	case <-ctx.Done():
		fmt.Fprintln(d.out)
		return 0, ctx.Err()
	case res, ok := <-d.lines:
		if !ok {
			return 0, services.Wrap(services.ErrMalformedInput, "disambiguation", "read choice", "no input", io.EOF)
		}
		if res.err != nil && strings.TrimSpace(res.line) == "" {
			return 0, services.Wrap(services.ErrMalformedInput, "disambiguation", "read choice", "no input", res.err)
		}
		return parseChoice(res.line)
	}
}

// readLines feeds d.lines until the input fails, then closes it.
func (d *ConsoleDecider) readLines() {
	defer close(d.lines)
	for {
		line, err := d.reader.ReadString('\n')
		d.lines <- lineResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func parseChoice(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	choice, err := strconv.Atoi(value)
	if err != nil {
		return 0, services.Wrap(services.ErrMalformedInput, "disambiguation", "parse choice", fmt.Sprintf("%q", value), err)
	}
	return choice, nil
}

// ScriptedDecider replays a fixed list of answers. Once the list is used up
// every further menu gets ChoiceCreateNew.
type ScriptedDecider struct {
	mu      sync.Mutex
	answers []string
	next    int
}

// NewScriptedDecider replays choices in order.
func NewScriptedDecider(choices ...int) *ScriptedDecider {
	answers := make([]string, 0, len(choices))
	for _, choice := range choices {
		answers = append(answers, strconv.Itoa(choice))
	}
	return &ScriptedDecider{answers: answers}
}

// LoadScript reads answers from path, one per line. Blank lines and lines
// starting with # are ignored.
func LoadScript(path string) (*ScriptedDecider, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrConfiguration, "disambiguation", "load script", "script path required", nil)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "disambiguation", "load script", path, err)
	}
	defer file.Close()

	decider := &ScriptedDecider{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		decider.answers = append(decider.answers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "disambiguation", "load script", path, err)
	}
	return decider, nil
}

// Choose returns the next scripted answer.
func (d *ScriptedDecider) Choose(ctx context.Context, _ Menu) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.next >= len(d.answers) {
		return ChoiceCreateNew, nil
	}
	answer := d.answers[d.next]
	d.next++
	return parseChoice(answer)
}

// Remaining reports how many scripted answers are left.
func (d *ScriptedDecider) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.answers) - d.next
}
