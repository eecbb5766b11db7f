// Package ingest turns raw timetable text into a canonical timetable.
// Strategies escalate in priority order and the result is always
// normalized; no strategy failure reaches the caller.
package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/calweir/timegrid/internal/jsonrepair"
	"github.com/calweir/timegrid/internal/normalize"
	"github.com/calweir/timegrid/internal/parsers"
	"github.com/calweir/timegrid/internal/prompts"
	"github.com/calweir/timegrid/internal/providers"
	"github.com/calweir/timegrid/internal/timetable"
)

const (
	// defaultPromptThreshold is the input length below which the AI call is
	// skipped; short inputs are cheaper to parse locally than to ship to a
	// model.
	defaultPromptThreshold = 1000

	defaultTimeout = 45 * time.Second

	// aiAttempts bounds the AI call per ingestion: one retry for transient
	// failures, then fall through to local parsers.
	aiAttempts = 2
)

// Options configures one ingestion call.
type Options struct {
	// Client is the AI collaborator; nil disables the AI strategy.
	Client providers.LLMClient
	// Model overrides the client's default model.
	Model string
	// Timeout bounds the AI call (default 45s).
	Timeout time.Duration
	// PromptThreshold is the minimum input length for the AI strategy.
	PromptThreshold int
	// Logger for progress; defaults to slog.Default().
	Logger *slog.Logger
}

// Result is the outcome of an ingestion.
type Result struct {
	Timetable *timetable.Timetable
	// Source names the strategy that produced the result: "json", "ai",
	// "grid", "blocks", "loose", or "default".
	Source string
	// ClassCount is the total recognized classes; callers inspect it to
	// warn when little or nothing was recognized.
	ClassCount int
}

// Ingest runs the strategy chain over raw input. It never returns an error:
// every failure mode degrades to the next strategy, terminating in the
// well-formed default skeleton.
func Ingest(ctx context.Context, raw string, opts Options) *Result {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	trimmed := strings.TrimSpace(raw)

	// Pre-formed JSON (possibly fenced or damaged) wins outright.
	if looksLikeJSON(trimmed) {
		candidate := jsonrepair.RepairAndParse(raw)
		if result := accept(candidate, "json"); result != nil {
			log.Debug("ingested from JSON input", "classes", result.ClassCount)
			return result
		}
	}

	// The AI strategy only sees long, prose-like input; anything short or
	// already tab-shaped goes straight to the structural parsers.
	if opts.Client != nil && len(trimmed) >= threshold(opts) && !strings.Contains(trimmed, "\t") {
		if result := tryAI(ctx, trimmed, opts, log); result != nil {
			return result
		}
	}

	for _, strategy := range parsers.Ordered() {
		candidate := strategy.Parse(raw)
		if result := accept(candidate, strategy.Name()); result != nil {
			log.Debug("ingested from structural parser", "strategy", strategy.Name(), "classes", result.ClassCount)
			return result
		}
	}

	log.Debug("no strategy recognized any classes, returning default skeleton")
	return &Result{
		Timetable:  normalize.Normalize(timetable.New()),
		Source:     "default",
		ClassCount: 0,
	}
}

// accept normalizes a candidate and returns a Result when it holds at least
// one class. A zero-class result means the strategy failed and the chain
// escalates.
func accept(candidate *timetable.Timetable, source string) *Result {
	normalized := normalize.Normalize(candidate)
	count := normalized.ClassCount()
	if count == 0 {
		return nil
	}
	return &Result{Timetable: normalized, Source: source, ClassCount: count}
}

// tryAI calls the external model with the extraction prompt, repairs its
// output, and accepts the result only when it passes the class-count gate.
// All failure modes are logged and reported as nil so the chain continues.
func tryAI(ctx context.Context, input string, opts Options, log *slog.Logger) *Result {
	prompt, err := prompts.ExtractionPrompt(input)
	if err != nil {
		log.Warn("failed to render extraction prompt", "error", err)
		return nil
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	requestID := uuid.New().String()
	var resp *providers.Response
	err = retry.Do(
		func() error {
			var callErr error
			resp, callErr = opts.Client.Complete(callCtx, &providers.Request{
				Prompt:    prompt,
				Model:     opts.Model,
				RequestID: requestID,
			})
			return callErr
		},
		retry.Attempts(aiAttempts),
		retry.Delay(500*time.Millisecond),
		retry.Context(callCtx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		log.Warn("AI extraction failed, falling back to local parsers", "error", err, "request_id", requestID)
		return nil
	}

	candidate := jsonrepair.RepairAndParse(resp.Content)
	if err := ValidateCandidate(candidate); err != nil {
		// Schema violations are advisory; the normalizer repairs structure
		// and the class-count gate decides acceptance.
		log.Warn("AI output failed schema validation", "error", err, "request_id", requestID)
	}

	result := accept(candidate, "ai")
	if result == nil {
		log.Warn("AI output normalized to zero classes, falling back", "request_id", requestID)
		return nil
	}
	log.Debug("ingested from AI output", "classes", result.ClassCount, "model", resp.ModelUsed)
	return result
}

func threshold(opts Options) int {
	if opts.PromptThreshold > 0 {
		return opts.PromptThreshold
	}
	return defaultPromptThreshold
}

// looksLikeJSON reports whether the input is plausibly a JSON document or a
// fenced one.
func looksLikeJSON(trimmed string) bool {
	return strings.HasPrefix(trimmed, "{") ||
		strings.HasPrefix(trimmed, "[") ||
		strings.Contains(trimmed, "```")
}
