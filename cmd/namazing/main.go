// Command namazing is a thin illustrative CLI around the namazing
// engine: it parses a brief, starts one run, streams its events as
// JSON lines, and prints the final result. It is not a reimplementation
// of a full rich-terminal client — just enough to drive the pipeline
// from a shell.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/smilemakc/namazing"
)

func main() {
	var (
		briefFlag = flag.String("brief", "", "Client brief text (reads stdin if empty)")
		parallel  = flag.Bool("parallel", false, "Run in parallel mode (wider candidate slate, concurrent research)")
		noStubs   = flag.Bool("no-stubs", false, "Fail instead of falling back to stub output when the model backend errors")
		pretty    = flag.Bool("pretty", true, "Use console-formatted logging instead of structured JSON")
	)
	flag.Parse()

	cfg := namazing.LoadConfig()
	engine := namazing.NewEngine(cfg, *pretty)
	log := engine.Logger()

	brief := *briefFlag
	if brief == "" {
		brief = readStdin()
	}
	if strings.TrimSpace(brief) == "" {
		fmt.Fprintln(os.Stderr, "usage: namazing -brief \"...\" (or pipe a brief on stdin)")
		os.Exit(1)
	}

	mode := namazing.ModeSerial
	if *parallel {
		mode = namazing.ModeParallel
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info().Msg("interrupted, cancelling run")
		cancel()
	}()

	run := engine.StartRun(ctx, brief, mode, !*noStubs)
	log.Info().Str("run_id", run.ID).Str("mode", string(mode)).Msg("run started")

	done := make(chan struct{})
	unsubscribe, err := engine.Subscribe(run.ID, func(event namazing.Event) {
		line, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Println(string(line))
		if event.Type == "done" && event.Agent == "report-composer" {
			close(done)
		}
		if event.Type == "error" && event.Agent == "orchestrator" {
			close(done)
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to subscribe to run")
		os.Exit(1)
	}
	defer unsubscribe()

	select {
	case <-done:
	case <-ctx.Done():
	}

	result, runErr := run.Result()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", runErr)
		os.Exit(1)
	}
	if result == nil {
		fmt.Fprintln(os.Stderr, "run did not complete")
		os.Exit(1)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(output))
}

func readStdin() string {
	stat, err := os.Stdin.Stat()
	if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
		return ""
	}

	var b strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}
