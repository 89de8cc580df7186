// Package shell is a line-oriented terminal front end over the client core.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"zift.local/internal/api"
	"zift.local/internal/app"
	"zift.local/internal/auth"
	"zift.local/internal/notion"
	"zift.local/internal/screens"
)

// Deps is everything the shell drives.
type Deps struct {
	App            *app.App
	API            *api.Client
	Session        screens.UserStore
	Resume         screens.ResumeService
	Exporter       *notion.Exporter
	SearchDebounce time.Duration
}

type Shell struct {
	deps Deps
	in   *bufio.Scanner
	out  io.Writer

	// mu serialises writes to out; debounced searches render from a timer
	// goroutine.
	mu    sync.Mutex
	views *views

	title *color.Color
	faint *color.Color
	warn  *color.Color
	good  *color.Color
}

func New(deps Deps, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		deps:  deps,
		in:    bufio.NewScanner(in),
		out:   out,
		title: color.New(color.FgCyan, color.Bold),
		faint: color.New(color.Faint),
		warn:  color.New(color.FgRed),
		good:  color.New(color.FgGreen),
	}
}

// Run reads commands until quit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	s.render(ctx)
	for {
		s.printf("%s", s.faint.Sprint("> "))
		if !s.in.Scan() {
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			s.render(ctx)
			continue
		}

		cmd, args := splitCommand(line)
		switch cmd {
		case "quit", "exit":
			return nil
		case "help", "?":
			s.help()
			continue
		}

		var err error
		if s.deps.App.Mode() == app.ModeMain {
			err = s.mainCommand(ctx, cmd, args)
		} else {
			err = s.authCommand(ctx, cmd, args)
		}
		if err != nil {
			s.fail(err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.render(ctx)
	}
}

func splitCommand(line string) (string, []string) {
	fields := strings.Fields(line)
	return strings.ToLower(fields[0]), fields[1:]
}

func (s *Shell) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) info(msg string) {
	if msg == "" {
		return
	}
	s.printf("%s\n", s.good.Sprint(msg))
}

func (s *Shell) fail(err error) {
	s.printf("%s\n", s.warn.Sprint(errorText(err)))
}

// errorText turns an error into the line shown to the user.
func errorText(err error) string {
	var verr *auth.ValidationError
	if errors.As(err, &verr) {
		keys := make([]string, 0, len(verr.Fields))
		for k := range verr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		msgs := make([]string, 0, len(keys))
		for _, k := range keys {
			msgs = append(msgs, verr.Fields[k])
		}
		return strings.Join(msgs, ". ")
	}
	var transport *api.TransportError
	if errors.As(err, &transport) {
		return "Network error. Check your connection and try again."
	}
	return api.ErrorMessage(err, err.Error())
}

// confirm asks a yes/no question on the next input line.
func (s *Shell) confirm(question string) bool {
	s.printf("%s [y/N] ", question)
	if !s.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return answer == "y" || answer == "yes"
}

func index(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("which one? give the number from the list")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not a list number", args[0])
	}
	return n - 1, nil
}

func (s *Shell) help() {
	if s.deps.App.Mode() != app.ModeMain {
		s.printf(`commands:
  login <email> <password>          sign in
  register [<email> <password> <name...>]
  forgot [<email>]                  send a password reset link
  otp <code>                        verify your email
  resend                            send a new verification code
  edit                              change the email being verified
  google                            sign in with Google
  back | quit
`)
		return
	}
	s.printf(`commands:
  home | saved | applied | profile  switch tab
  open <n>                          open item n of the list
  search <words> | filter <location|experience|mode> <value> | clear
  bookmark <n>                      toggle bookmark (home) or remove (saved)
  apply                             apply to the open job
  job                               open the job of an application
  refresh | back | settings | analytics | privacy | terms
  public on|off | upload <file> | resume | edit
  edit name <name> | edit phone <number> | edit public on|off | save
  export                            copy applications to Notion
  logout | quit
`)
}
