package alert

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandSpeaker runs a local text-to-speech program such as espeak with the
// text as its last argument. Cancelling the context kills the process, which
// is how an utterance is interrupted.
type CommandSpeaker struct {
	Path string
	Args []string
}

// NewCommandSpeaker parses a command line like "espeak -s 150".
func NewCommandSpeaker(cmdline string) (*CommandSpeaker, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty speech command")
	}
	path, err := exec.LookPath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("speech command %q not found: %w", fields[0], err)
	}
	return &CommandSpeaker{Path: path, Args: fields[1:]}, nil
}

func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	args := append(append([]string{}, s.Args...), text)
	cmd := exec.CommandContext(ctx, s.Path, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w: %s", s.Path, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
