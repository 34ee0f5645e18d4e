package dictclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"ringquorum/internal/logger"
)

// Runner executes a scripted list of dictionary commands against a
// Client: put, get, store, and load.
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
// DuplicateWord/WordNotFound errors. It stops and returns the first
// transport-level error.
func (r *Runner) Run(ctx context.Context, commands []string) error {
	for _, line := range commands {
		if err := r.runOne(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runOne(ctx context.Context, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	switch parts[0] {
	case "put":
		if len(parts) < 3 {
			r.lgr.Warn("dictclient: malformed put command", logger.F("line", line))
			return nil
		}
		word, definition := parts[1], parts[2]
		err := r.client.Put(ctx, word, definition)
		switch {
		case err == nil:
			r.lgr.Info("put succeeded", logger.F("word", word))
		case errors.Is(err, ErrDuplicateWord):
			r.lgr.Info("put rejected: word already in the DHT", logger.F("word", word))
		default:
			return err
		}
	case "get":
		if len(parts) < 2 {
			r.lgr.Warn("dictclient: malformed get command", logger.F("line", line))
			return nil
		}
		word := parts[1]
		def, err := r.client.Get(ctx, word)
		switch {
		case err == nil:
			r.lgr.Info("get succeeded", logger.F("word", word), logger.F("definition", def))
		case errors.Is(err, ErrWordNotFound):
			r.lgr.Info("get found no definition", logger.F("word", word))
		default:
			return err
		}
	case "store":
		if len(parts) < 2 {
			r.lgr.Warn("dictclient: malformed store command", logger.F("line", line))
			return nil
		}
		return r.store(ctx, parts[1])
	case "load":
		if len(parts) < 2 {
			r.lgr.Warn("dictclient: malformed load command", logger.F("line", line))
			return nil
		}
		var dest string
		if len(parts) > 2 {
			dest = parts[2]
		}
		return r.load(ctx, parts[1], dest)
	default:
		r.lgr.Warn("dictclient: unknown command", logger.F("line", line))
	}
	return nil
}

// store parses a dictionary file of alternating word/"Defn: definition"
// lines and puts each pair into the DHT.
func (r *Runner) store(ctx context.Context, fileName string) error {
	lines, err := readLines(fileName)
	if err != nil {
		return fmt.Errorf("dictclient: store: %w", err)
	}
	for i := 0; i+1 < len(lines); i += 2 {
		word, raw := lines[i], lines[i+1]
		if word == "" || raw == "" {
			continue
		}
		sep := strings.Index(raw, ":")
		if sep == -1 {
			continue
		}
		definition := strings.TrimSpace(raw[sep+1:])
		err := r.client.Put(ctx, word, definition)
		switch {
		case err == nil:
			r.lgr.Info("store: inserted word", logger.F("word", word))
		case errors.Is(err, ErrDuplicateWord):
			r.lgr.Info("store: word already in the DHT", logger.F("word", word))
		default:
			return err
		}
	}
	return nil
}

// load reads a word list, one word per line, gets each definition, and
// optionally writes "word\n Defn: def\n" pairs to dest. Missing words
// produce empty definitions rather than aborting the run.
func (r *Runner) load(ctx context.Context, fileName, dest string) error {
	words, err := readLines(fileName)
	if err != nil {
		return fmt.Errorf("dictclient: load: %w", err)
	}
	definitions := make([]string, len(words))
	for i, word := range words {
		if word == "" {
			continue
		}
		def, err := r.client.Get(ctx, word)
		switch {
		case err == nil:
			definitions[i] = def
			r.lgr.Info("load: got definition", logger.F("word", word), logger.F("definition", def))
		case errors.Is(err, ErrWordNotFound):
			r.lgr.Info("load: word has no definition", logger.F("word", word))
		default:
			return err
		}
	}
	if dest == "" {
		return nil
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("dictclient: load: creating %s: %w", dest, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for i, word := range words {
		fmt.Fprintf(w, "%s\n Defn: %s\n", word, definitions[i])
	}
	return w.Flush()
}

func readLines(fileName string) ([]string, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}
