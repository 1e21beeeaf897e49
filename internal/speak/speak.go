// Package speak voices accepted phrases through an external text-to-speech
// command. Synthesis itself stays outside the process; this package only
// invokes whatever speech tool the host system provides.
package speak

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrNoSpeechCommand is returned when no known TTS command exists on PATH.
var ErrNoSpeechCommand = errors.New("no speech command found")

// Speaker voices a phrase.
type Speaker interface {
	Say(text string) error
}

// speechCommands lists known TTS commands in preference order, with the
// arguments that precede the phrase.
var speechCommands = [][]string{
	{"say"},
	{"espeak-ng"},
	{"espeak"},
	{"spd-say", "--wait"},
}

// Discover returns the first known speech command found on PATH.
func Discover() ([]string, error) {
	for _, candidate := range speechCommands {
		if path, err := exec.LookPath(candidate[0]); err == nil {
			cmd := append([]string{path}, candidate[1:]...)
			return cmd, nil
		}
	}
	return nil, ErrNoSpeechCommand
}

// CommandSpeaker runs an external speech command with a timeout per phrase.
type CommandSpeaker struct {
	// Command is the executable plus any fixed arguments; the phrase is
	// appended as the final argument.
	Command []string

	// TimeoutMs bounds a single invocation. Zero or negative means 10000.
	TimeoutMs int
}

// NewCommandSpeaker discovers a speech command on PATH and returns a speaker
// using it. Returns ErrNoSpeechCommand when the host has none.
func NewCommandSpeaker(timeoutMs int) (*CommandSpeaker, error) {
	command, err := Discover()
	if err != nil {
		return nil, err
	}
	return &CommandSpeaker{Command: command, TimeoutMs: timeoutMs}, nil
}

// Say runs the speech command with the phrase as its final argument.
// Blocks until the command exits or the timeout fires.
func (s *CommandSpeaker) Say(text string) error {
	if len(s.Command) == 0 {
		return ErrNoSpeechCommand
	}

	timeout := time.Duration(s.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	args := make([]string, 0, len(s.Command))
	args = append(args, s.Command[1:]...)
	args = append(args, text)
	cmd := exec.CommandContext(ctx, s.Command[0], args...)

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("speech command timeout after %s", timeout)
	}
	if err != nil {
		return fmt.Errorf("speech command failed: %w", err)
	}
	return nil
}

// NullSpeaker discards phrases. Used when the host has no speech command and
// in tests.
type NullSpeaker struct{}

// Say implements Speaker as a no-op.
func (NullSpeaker) Say(text string) error {
	return nil
}
