package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/engine"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/event"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/sink"
)

var (
	smearIn  string
	smearOut string
)

var smearCmd = &cobra.Command{
	Use:   "smear",
	Short: "Smear a JSON-lines file of generator events",
	Long: `smear reads one event envelope per line ({"id", "run", "lumi", "number",
"gen_event"}), runs it through the configured modules on all streams and
writes one result per line in input order. Line i is processed on stream
i % streams, so a fixed seed reproduces the same vertices.`,
	RunE: runSmear,
}

func init() {
	smearCmd.Flags().StringVar(&smearIn, "in", "-", "input JSONL file (- for stdin)")
	smearCmd.Flags().StringVar(&smearOut, "out", "-", "output JSONL file (- for stdout)")
}

func runSmear(cmd *cobra.Command, args []string) error {
	rt, p, err := setup()
	if err != nil {
		return err
	}
	cfg := rt.loader.Config()

	in, err := openInput(cmd, smearIn)
	if err != nil {
		return err
	}
	defer in.Close()
	events, err := readEvents(in)
	if err != nil {
		return err
	}

	pub, err := sink.New(cfg.Output)
	if err != nil {
		return err
	}
	defer pub.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	eng := engine.New(ctx, p, pub, cfg.Engine)
	defer eng.Shutdown()

	results, err := processAll(ctx, eng, events)
	if err != nil {
		return err
	}

	out, err := openOutput(cmd, smearOut)
	if err != nil {
		return err
	}
	defer out.Close()

	failed := 0
	enc := json.NewEncoder(out)
	for _, r := range results {
		if !r.OK() {
			failed++
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("write result %s: %w", r.EventID, err)
		}
	}
	slog.Info("smear finished", "events", len(results), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d events failed", failed, len(results))
	}
	return nil
}

// processAll deals event i to stream i%streams and runs each stream's share in
// input order, one event in flight per stream. Results come back in input order
// and, for a fixed seed and stream count, are identical on every run.
func processAll(ctx context.Context, eng *engine.Engine, events []*event.Event) ([]*event.Result, error) {
	results := make([]*event.Result, len(events))
	n := eng.Streams()
	g, gctx := errgroup.WithContext(ctx)
	for stream := 0; stream < n; stream++ {
		g.Go(func() error {
			for i := stream; i < len(events); i += n {
				res, err := eng.ProcessOn(gctx, stream, events[i])
				if err != nil {
					return fmt.Errorf("event %s: %w", events[i].ID, err)
				}
				results[i] = res
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readEvents(r io.Reader) ([]*event.Event, error) {
	var events []*event.Event
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var ev event.Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if ev.ID == "" {
			ev.ID = uuid.New().String()
		}
		events = append(events, &ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return f, nil
}
