package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"formgate/internal/form"
	"formgate/internal/form/presets"
	"formgate/internal/platform/config"
	"formgate/internal/platform/logger"
	platformmetrics "formgate/internal/platform/metrics"
	"formgate/internal/submission"
	"formgate/internal/submission/metrics"
	"formgate/internal/validation/models"
	"formgate/pkg/platform/audit/publisher"
	"formgate/pkg/platform/audit/store/memory"
	"formgate/pkg/requestcontext"
)

const (
	exitReady    = 0
	exitError    = 1
	exitRejected = 2
)

type output struct {
	Status  submission.Status `json:"status"`
	Reason  submission.Reason `json:"reason,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Record  models.Record     `json:"record,omitempty"`
}

// main reads a JSON record, replays it into a form as user edits and prints
// the submission decision. It exits 2 when the save is rejected.
func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	fs := flag.NewFlagSet("formcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "-", "JSON record file, - for stdin")
	presetName := fs.String("preset", cfg.Preset, "rule preset: common or socio")
	timeout := fs.Duration("timeout", cfg.InteractionTimeout, "interaction freshness window")
	touchedAgo := fs.Duration("touched-ago", 0, "how long ago the record was last edited")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level")
	printMetrics := fs.Bool("metrics", false, "print metrics to stderr after the decision")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	log := logger.New(stderr, *logLevel)

	record, err := readRecord(*input, stdin)
	if err != nil {
		log.Error("failed to read record", "error", err)
		return exitError
	}

	rules, conditional, err := preset(*presetName)
	if err != nil {
		log.Error("unknown preset", "preset", *presetName)
		return exitError
	}

	reg := platformmetrics.NewRegistry()
	pub := publisher.NewPublisher(memory.NewInMemoryStore(), publisher.WithLogger(log))
	defer pub.Close()

	gate := submission.NewGate(
		submission.WithLogger(log),
		submission.WithMetrics(metrics.New(reg)),
		submission.WithAuditPublisher(pub),
	)

	formCfg := form.DefaultConfig()
	formCfg.InteractionTimeout = *timeout
	formCfg.ValidationDelay = cfg.ValidationDelay
	f, err := form.New(formCfg, rules,
		form.WithConditional(conditional),
		form.WithGate(gate),
		form.WithLogger(log),
	)
	if err != nil {
		log.Error("failed to build form", "error", err)
		return exitError
	}
	defer f.Dispose()

	now := time.Now()
	ctx := requestcontext.WithFormID(context.Background(), f.ID())
	editCtx := requestcontext.WithTime(ctx, now.Add(-*touchedAgo))
	for _, field := range slices.Sorted(maps.Keys(record)) {
		if err := f.Set(editCtx, field, record[field]); err != nil {
			log.Error("failed to set field", "field", field, "error", err)
			return exitError
		}
	}

	decision, sanitized, err := f.Submit(requestcontext.WithTime(ctx, now))
	if err != nil {
		log.Error("submit failed", "error", err)
		return exitError
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output{
		Status:  decision.Status,
		Reason:  decision.Reason,
		Message: decision.Message,
		Errors:  decision.Errors,
		Record:  sanitized,
	}); err != nil {
		log.Error("failed to write decision", "error", err)
		return exitError
	}

	if *printMetrics {
		if err := platformmetrics.WriteText(stderr, reg); err != nil {
			log.Warn("failed to write metrics", "error", err)
		}
	}

	if !decision.IsReady() {
		return exitRejected
	}
	return exitReady
}

func readRecord(path string, stdin io.Reader) (models.Record, error) {
	r := stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}

	var record models.Record
	if err := json.NewDecoder(r).Decode(&record); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if record == nil {
		record = models.Record{}
	}
	return record, nil
}

func preset(name string) (models.Rules, models.ConditionalRuleSet, error) {
	switch name {
	case config.PresetCommon:
		return presets.CommonFields(), nil, nil
	case config.PresetSocioDemographic:
		p := presets.SocioDemographic()
		return p.Rules, p.Conditional, nil
	default:
		return nil, nil, fmt.Errorf("unknown preset %q", name)
	}
}
