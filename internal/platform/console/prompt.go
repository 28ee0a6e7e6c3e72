package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"

	"passwordCrackerSim/internal/core/domain"
)

// Prompter asks the interactive questions of a session. Passwords are read
// without echo when input is a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Password reads the password to test. An empty answer is rejected.
func (p *Prompter) Password() (string, error) {
	var (
		password string
		err      error
	)
	if p.fd >= 0 {
		fmt.Fprint(p.out, "Enter Password to Test (input hidden): ")
		var raw []byte
		raw, err = term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		password = string(raw)
	} else {
		password, err = p.ask("Enter Password to Test: ")
	}
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", domain.WrapInvalidInput("password cannot be empty")
	}
	return password, nil
}

// choose asks until the answer is a number in [1, n]; blank picks 1.
func (p *Prompter) choose(question string, n int) (int, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return 0, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return 1, nil
		}
		choice, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a number.")
			continue
		}
		if choice < 1 || choice > n {
			fmt.Fprintf(p.out, "Invalid choice. Please select a number from 1 to %d.\n", n)
			continue
		}
		return choice, nil
	}
}

func (p *Prompter) Hardware() (domain.HardwareTier, error) {
	catalogue := domain.HardwareCatalogue()
	choice, err := p.choose(fmt.Sprintf("Select speed option (1-%d, default 1): ", len(catalogue)), len(catalogue))
	if err != nil {
		return "", err
	}
	return catalogue[choice-1].Tier, nil
}

func (p *Prompter) Target() (domain.TargetMode, error) {
	choice, err := p.choose("Select target (1 or 2, default 1): ", 2)
	if err != nil {
		return "", err
	}
	if choice == 2 {
		return domain.TargetWorstCase, nil
	}
	return domain.TargetAverageCase, nil
}

// Again asks whether to run another session; blank means yes.
func (p *Prompter) Again() (bool, error) {
	for {
		answer, err := p.ask("Do you want to run another simulation? (y/n, default y): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Invalid choice. Please enter 'y' or 'n'.")
	}
}
