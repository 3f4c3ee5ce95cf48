package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"
)

const passwordPrompt = "MySQL password:"

// PasswordReader supplies the password when none was given on the command
// line or in the environment.
type PasswordReader interface {
	ReadPassword(prompt string) (string, error)
}

// terminalPasswordReader prompts on out and reads from in without echo when
// in is a terminal. Piped input is read as a single line.
type terminalPasswordReader struct {
	in  io.Reader
	out io.Writer
}

func (r terminalPasswordReader) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if f, ok := r.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		state, err := term.GetState(fd)
		if err != nil {
			return "", fmt.Errorf("error reading password: %w", err)
		}
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		stop := restoreOnSignal(sigs, func() {
			_ = term.Restore(fd, state)
			fmt.Fprintln(r.out)
		}, exitFunc)
		b, err := term.ReadPassword(fd)
		signal.Stop(sigs)
		stop()
		fmt.Fprintln(r.out)
		if err != nil {
			return "", fmt.Errorf("error reading password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(r.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// interruptExitCode is the conventional status for a process ended by SIGINT.
const interruptExitCode = 130

// restoreOnSignal waits for a signal on sigs while a no-echo read is in
// progress. On a signal it calls restore and exits. The returned stop func
// ends the wait and blocks until the watcher has returned.
func restoreOnSignal(sigs <-chan os.Signal, restore func(), exit func(int)) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-sigs:
			restore()
			exit(interruptExitCode)
		case <-done:
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}

// newPasswordReader is replaced in tests.
var newPasswordReader = func(in io.Reader, out io.Writer) PasswordReader {
	return terminalPasswordReader{in: in, out: out}
}

// resolvePassword returns the configured password, asking for one if it is
// empty.
func resolvePassword(configured string, pr PasswordReader) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return pr.ReadPassword(passwordPrompt)
}
