// Package shell drives the interactive loop and hosts the job-control
// builtins on top of the job table and the foreground controller.
package shell

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"

	"gosh/internal/config"
	"gosh/internal/history"
	"gosh/internal/job"
	"gosh/internal/proc"
	"gosh/internal/sigevent"
)

type Shell struct {
	config     *config.Config
	history    *history.History
	reader     *readline.Instance
	flags      *sigevent.Flags
	table      *job.Table
	term       *proc.Terminal
	styles     styles
	aliases    map[string]string
	variables  map[string]string
	currentDir string
	lastStatus int
	quit       bool

	out    io.Writer
	errOut io.Writer
}

func New(cfg *config.Config) (*Shell, error) {
	hist, err := history.New(cfg.HistoryFile, cfg.HistorySize)
	if err != nil {
		return nil, fmt.Errorf("error initializing history: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing readline: %w", err)
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("error getting current directory: %w", err)
	}

	return &Shell{
		config:     cfg,
		history:    hist,
		reader:     rl,
		flags:      &sigevent.Flags{},
		table:      job.NewTable(),
		term:       proc.OpenTerminal(),
		styles:     newStyles(cfg.Color),
		aliases:    make(map[string]string),
		variables:  make(map[string]string),
		currentDir: currentDir,
		out:        os.Stdout,
		errOut:     os.Stderr,
	}, nil
}

// Run is the main control-flow path. All job-table mutation and printing
// happens here; signal delivery only sets flags that this loop polls.
func (s *Shell) Run() int {
	stop := sigevent.Install(s.flags)
	defer stop()
	defer s.reader.Close()

	for !s.quit {
		if s.flags.TakeHangup() {
			break
		}

		// Sweep all jobs before every prompt. The child flag is only a
		// hint; sweeping with nothing pending is a no-op.
		s.flags.TakeChild()
		s.announce(s.reap())

		s.reader.SetPrompt(s.prompt())
		line, err := s.reader.Readline()
		if s.flags.TakeHangup() {
			// Arrived while blocked in the read; drop the pending line.
			break
		}
		if err == readline.ErrInterrupt {
			// Interrupt at the prompt aborts the input line, nothing more.
			s.flags.TakeInterrupt()
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			s.errorf("%v", err)
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.history.Add(line)
		s.execute(line)
	}

	s.shutdown()
	return s.lastStatus
}

// RunCommand executes a single command line and returns its status. Used
// by the -c flag.
func (s *Shell) RunCommand(line string) int {
	stop := sigevent.Install(s.flags)
	defer stop()
	defer s.reader.Close()

	s.execute(strings.TrimSpace(line))
	s.shutdown()
	return s.lastStatus
}

func (s *Shell) execute(input string) {
	input = s.expand(input)

	args, err := shellquote.Split(input)
	if err != nil {
		s.errorf("%v", err)
		s.lastStatus = 2
		return
	}
	if len(args) == 0 {
		return
	}

	args = s.applyAlias(args)

	if handled := s.runBuiltin(args); handled {
		return
	}
	s.runExternal(args, input)
}

// expand substitutes $? and shell variables before tokenizing.
func (s *Shell) expand(input string) string {
	input = strings.ReplaceAll(input, "$?", strconv.Itoa(s.lastStatus))
	for k, v := range s.variables {
		input = strings.ReplaceAll(input, "$"+k, v)
	}
	return input
}

func (s *Shell) applyAlias(args []string) []string {
	alias, ok := s.aliases[args[0]]
	if !ok {
		return args
	}
	aliasParts, err := shellquote.Split(alias)
	if err != nil || len(aliasParts) == 0 {
		return args
	}
	return append(aliasParts, args[1:]...)
}

func (s *Shell) runExternal(args []string, display string) {
	background := false
	if args[len(args)-1] == "&" {
		background = true
		args = args[:len(args)-1]
		display = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(display), "&"))
	}
	if len(args) == 0 {
		return
	}

	if background {
		h, err := proc.Spawn(proc.Command{Path: args[0], Args: args[1:]})
		if err != nil {
			s.errorf("%v", err)
			s.lastStatus = 127
			return
		}
		j := s.table.Add(h, display, job.Status{State: job.Running})
		s.printf("[%d] %d\n", j.ID, h.Pid())
		s.lastStatus = 0
		return
	}

	h, err := proc.Spawn(proc.Command{
		Path:   args[0],
		Args:   args[1:],
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		s.errorf("%v", err)
		s.lastStatus = 127
		return
	}

	st, err := s.term.RunForeground(h)
	if err != nil {
		s.errorf("%v", err)
		s.lastStatus = 1
		return
	}
	s.lastStatus = st.ExitCode()

	if st.State == job.Stopped {
		// Ownership of the handle moves to the table.
		j := s.table.Add(h, display, st)
		s.println(s.styles.notice(job.Notice{ID: j.ID, Display: j.Display, Status: st}))
	}
}

// shutdown notifies every remaining job: stopped groups get SIGCONT
// immediately before the hangup so they can act on it instead of staying
// frozen.
func (s *Shell) shutdown() {
	for _, j := range s.table.Jobs() {
		if j.Status.State == job.Stopped {
			_ = j.Process.Continue()
		}
		_ = j.Process.SignalGroup(hangupSignal)
	}
	if err := s.history.Save(); err != nil {
		s.errorf("error saving history: %v", err)
	}
}

func (s *Shell) prompt() string {
	if s.config != nil && s.config.Prompt != "" {
		return s.styles.prompt(s.config.Prompt)
	}
	return s.styles.prompt(s.currentDir + " $ ")
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) errorf(format string, a ...any) {
	fmt.Fprintf(s.errOut, "gosh: "+format+"\n", a...)
}
