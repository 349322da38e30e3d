package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heycodex/cli/cmd/hey-codex/cli/council"
	"github.com/heycodex/cli/cmd/hey-codex/cli/edittrack"
	"github.com/heycodex/cli/cmd/hey-codex/cli/logging"
	"github.com/heycodex/cli/cmd/hey-codex/cli/routing"
	"github.com/heycodex/cli/cmd/hey-codex/cli/validation"
	"github.com/heycodex/cli/redact"
)

// handleUserPromptSubmit suggests delegating the submitted prompt to Codex.
func handleUserPromptSubmit(ctx context.Context, hc *HookContext) error {
	data, ok, err := readHookInput(hc.Stdin)
	if !ok {
		return err
	}
	input, err := parsePromptHookInput(data)
	if err != nil {
		return err
	}

	text := input.Text()
	if text == "" {
		logging.Debug(ctx, "prompt hook input has no prompt text")
		return nil
	}

	c := routing.ClassifyPrompt(text, routing.PromptKeywordSets)
	if logging.DebugEnabled(ctx) {
		logging.Debug(ctx, "prompt classified",
			slog.String("tier", c.Tier.String()),
			slog.String("trigger", c.Trigger),
			redact.Attr("prompt_excerpt", excerpt(text, promptExcerptRunes)),
		)
	}
	if !c.Emits() {
		return nil
	}

	if c.Tier == routing.TierMust {
		if helper, found := council.Resolve(hc.Env); found {
			c.HelperPath = helper
		}
	}

	return writeHookResponse(hc.Stdout, routing.PromptMessage(c))
}

// handlePreWrite flags files whose edits Codex handles better, before they are written.
func handlePreWrite(ctx context.Context, hc *HookContext) error {
	path, err := readWritePath(hc)
	if path == "" {
		return err
	}

	c := routing.ClassifyWritePath(path, routing.WritePathRules)
	logging.Debug(ctx, "write path classified",
		slog.String("tier", c.Tier.String()),
		slog.String("trigger", c.Trigger),
	)
	if !c.Emits() {
		return nil
	}

	return writeHookResponse(hc.Stdout, routing.WritePathMessage(c, path))
}

// handlePostWrite records the written file and suggests verification or review.
func handlePostWrite(ctx context.Context, hc *HookContext) error {
	path, err := readWritePath(hc)
	if path == "" {
		return err
	}

	var lines []string
	if label, ok := routing.VerifyLabel(path, routing.SensitivePathRules); ok {
		lines = append(lines, routing.VerifyMessage(label))
	}

	if err := validation.ValidateTrackedPath(path); err != nil {
		logging.Warn(ctx, "path not tracked", slog.String("error", err.Error()))
	} else {
		tracker := edittrack.NewTracker(hc.Store, hc.Settings.ReviewThreshold)
		if res := tracker.Record(ctx, hc.SessionKey, path); res.ReviewDue {
			lines = append(lines, routing.ReviewMessage(res.Distinct))
		}
	}

	if len(lines) == 0 {
		return nil
	}
	return writeHookResponse(hc.Stdout, strings.Join(lines, "\n"))
}

// readWritePath extracts the target path of a write hook. An empty path
// means there is nothing to do; err explains why when it was a failure.
func readWritePath(hc *HookContext) (string, error) {
	data, ok, err := readHookInput(hc.Stdin)
	if !ok {
		return "", err
	}
	input, err := parseWriteHookInput(data)
	if err != nil {
		return "", err
	}
	return input.Path(), nil
}
