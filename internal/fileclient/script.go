package fileclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ringquorum/internal/logger"
)

// Runner executes a scripted list of file-store commands against a
// Client: write, read, list, and sleep.
type Runner struct {
	client *Client
	lgr    logger.Logger
}

// NewRunner constructs a Runner bound to client.
func NewRunner(client *Client, lgr logger.Logger) *Runner {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	return &Runner{client: client, lgr: lgr}
}

// Run executes each command in order, logging and continuing past
// FileNotFound. It stops and returns the first transport-level error.
func (r *Runner) Run(ctx context.Context, commands []string) error {
	for _, line := range commands {
		if err := r.runOne(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runOne(ctx context.Context, line string) error {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 3)
	if len(parts) == 0 || parts[0] == "" {
		return nil
	}
	switch parts[0] {
	case "write":
		if len(parts) < 3 {
			r.lgr.Warn("fileclient: malformed write command", logger.F("line", line))
			return nil
		}
		if err := r.client.Write(ctx, parts[1], parts[2]); err != nil {
			return err
		}
		r.lgr.Info("wrote file", logger.F("file", parts[1]))
	case "read":
		if len(parts) < 2 {
			r.lgr.Warn("fileclient: malformed read command", logger.F("line", line))
			return nil
		}
		content, err := r.client.Read(ctx, parts[1])
		switch {
		case err == nil:
			r.lgr.Info("read file", logger.F("file", parts[1]), logger.F("content", content))
		case errors.Is(err, ErrFileNotFound):
			r.lgr.Info("read: file not found", logger.F("file", parts[1]))
		default:
			return err
		}
	case "sleep":
		if len(parts) < 2 {
			r.lgr.Warn("fileclient: malformed sleep command", logger.F("line", line))
			return nil
		}
		secs, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return fmt.Errorf("fileclient: invalid sleep duration %q: %w", parts[1], err)
		}
		r.lgr.Debug("sleeping", logger.F("seconds", secs))
		if err := r.client.Sleep(ctx, time.Duration(secs*float64(time.Second))); err != nil {
			return err
		}
	case "list":
		entries, err := r.client.List(ctx)
		if err != nil {
			return err
		}
		r.lgr.Info("current files", logger.F("entries", entries))
	default:
		r.lgr.Warn("fileclient: unknown command", logger.F("line", line))
	}
	return nil
}
