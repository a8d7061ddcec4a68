package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// readLine prints label and returns the next line without its newline.
// A final line without a newline is still returned.
func (c *Console) readLine(label string) (string, error) {
	if _, err := fmt.Fprint(c.out, label); err != nil {
		return "", errors.WithStack(err)
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}

		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// field reads a form value. An empty answer keeps current.
func (c *Console) field(label, current string) (string, error) {
	if current == "" {
		return c.readLine(label + ": ")
	}

	value, err := c.readLine(fmt.Sprintf("%s [%s]: ", label, current))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(value) == "" {
		return current, nil
	}

	return value, nil
}

func (c *Console) password(label string) (string, error) {
	if c.readPassword == nil {
		return c.readLine(label + ": ")
	}

	if _, err := fmt.Fprint(c.out, label+": "); err != nil {
		return "", errors.WithStack(err)
	}
	secret, err := c.readPassword()
	fmt.Fprintln(c.out)
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}

	return string(secret), nil
}

func (c *Console) confirm(question string) (bool, error) {
	answer, err := c.readLine(question + " [y/N]: ")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
