package outwriter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/huangsam/reviewers/internal/contract"
	"github.com/huangsam/reviewers/schema"
	"golang.org/x/term"
)

// defaultPager is used when $PAGER is unset.
const defaultPager = "less -R"

// shouldPage reports whether text output should go through the pager.
func shouldPage(cfg *contract.Config) bool {
	return cfg.UsePager &&
		cfg.OutputFile == "" &&
		cfg.Output == schema.TextOut &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

// pagerCommand returns the pager named by $PAGER, or the default one.
func pagerCommand() string {
	if p := strings.TrimSpace(os.Getenv("PAGER")); p != "" {
		return p
	}
	return defaultPager
}

// pageOutput renders into the user's pager attached to the terminal.
func pageOutput(render func(io.Writer) error) error {
	return runPager(pagerCommand(), os.Stdout, render)
}

// runPager starts command with its stdin fed by render and its stdout sent to out.
// A pager that quits before reading everything is not an error.
func runPager(command string, out io.Writer, render func(io.Writer) error) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return errors.New("empty pager command")
	}

	cmd := exec.Command(fields[0], fields[1:]...)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cannot start pager %q: %w", command, err)
	}

	renderErr := render(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()

	if renderErr != nil && !errors.Is(renderErr, syscall.EPIPE) {
		return renderErr
	}
	if waitErr != nil {
		return fmt.Errorf("pager %q failed: %w", command, waitErr)
	}
	return nil
}
