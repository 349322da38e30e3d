package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/heycodex/cli/cmd/hey-codex/cli/jsonutil"

	"golang.org/x/term"
)

// maxHookStdinBytes caps how much of a hook payload is read.
const maxHookStdinBytes = 1 << 20

// promptExcerptRunes bounds the prompt text copied into debug logs.
const promptExcerptRunes = 200

// promptHookInput is the JSON payload of the UserPromptSubmit hook.
type promptHookInput struct {
	UserPrompt string `json:"user_prompt"`
	Query      string `json:"query"`
	Prompt     string `json:"prompt"`
}

// Text returns the first non-empty prompt field.
func (in promptHookInput) Text() string {
	for _, s := range []string{in.UserPrompt, in.Query, in.Prompt} {
		if s != "" {
			return s
		}
	}
	return ""
}

// writeHookInput is the JSON payload of the PreToolUse/PostToolUse hooks for
// file-writing tools. Only the target path is read; other fields such as
// tool_name are ignored whatever their type.
type writeHookInput struct {
	ToolInput struct {
		FilePath string `json:"file_path"`
		Path     string `json:"path"`
	} `json:"tool_input"`
}

// Path returns tool_input.file_path, falling back to tool_input.path.
func (in writeHookInput) Path() string {
	if in.ToolInput.FilePath != "" {
		return in.ToolInput.FilePath
	}
	return in.ToolInput.Path
}

// hookResponse is the JSON document a hook prints when it has advice.
type hookResponse struct {
	HookSpecificOutput hookSpecificOutput `json:"hookSpecificOutput"`
}

type hookSpecificOutput struct {
	Message string `json:"message"`
}

// readHookInput reads the hook payload. ok is false when there is nothing
// to process: stdin is a terminal, unreadable, oversized, or blank.
func readHookInput(r io.Reader) (data []byte, ok bool, err error) {
	if f, isFile := r.(*os.File); isFile && term.IsTerminal(int(f.Fd())) {
		return nil, false, nil
	}

	data, err = io.ReadAll(io.LimitReader(r, maxHookStdinBytes+1))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read hook input: %w", err)
	}
	if len(data) > maxHookStdinBytes {
		return nil, false, fmt.Errorf("hook input exceeds %d bytes", maxHookStdinBytes)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, false, nil
	}
	return data, true, nil
}

func parsePromptHookInput(data []byte) (promptHookInput, error) {
	var input promptHookInput
	if err := json.Unmarshal(data, &input); err != nil {
		return promptHookInput{}, fmt.Errorf("failed to parse prompt hook input: %w", err)
	}
	return input, nil
}

func parseWriteHookInput(data []byte) (writeHookInput, error) {
	var input writeHookInput
	if err := json.Unmarshal(data, &input); err != nil {
		return writeHookInput{}, fmt.Errorf("failed to parse write hook input: %w", err)
	}
	return input, nil
}

// writeHookResponse prints message as a single-line hook response.
// An empty message prints nothing.
func writeHookResponse(w io.Writer, message string) error {
	if message == "" {
		return nil
	}
	out, err := jsonutil.MarshalLine(hookResponse{HookSpecificOutput: hookSpecificOutput{Message: message}})
	if err != nil {
		return fmt.Errorf("failed to encode hook response: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write hook response: %w", err)
	}
	return nil
}

// excerpt returns at most n runes of s, marking truncation with an ellipsis.
func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
