package earthdata

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/jrsteele09/hyp3-catalog/internal/errors"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// LineInput reads the username and the secret as consecutive lines.
type LineInput struct {
	reader *bufio.Reader
}

var _ InputSource = (*LineInput)(nil)

func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{reader: bufio.NewReader(r)}
}

func (l *LineInput) ReadUsername(context.Context) (string, error) {
	return l.readLine()
}

func (l *LineInput) ReadSecret(context.Context) (string, error) {
	return l.readLine()
}

func (l *LineInput) readLine() (string, error) {
	line, err := l.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", apperrors.ErrInputClosed
		}
		return "", errors.Wrap(err, "[LineInput] read")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// TerminalInput reads the secret without echo when in is a terminal, and falls
// back to line input otherwise.
type TerminalInput struct {
	in    *os.File
	out   io.Writer
	lines *LineInput
}

var _ InputSource = (*TerminalInput)(nil)

func NewTerminalInput(in *os.File, out io.Writer) *TerminalInput {
	return &TerminalInput{in: in, out: out, lines: NewLineInput(in)}
}

func (t *TerminalInput) ReadUsername(ctx context.Context) (string, error) {
	return t.lines.ReadUsername(ctx)
}

func (t *TerminalInput) ReadSecret(ctx context.Context) (string, error) {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return t.lines.ReadSecret(ctx)
	}
	secret, err := term.ReadPassword(fd)
	if err != nil {
		return "", errors.Wrap(err, "[TerminalInput] failed to read password")
	}
	fmt.Fprintln(t.out)
	return string(secret), nil
}
