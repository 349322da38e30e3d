package routing

import (
	"fmt"
	"strings"
)

// MessageTag prefixes every advisory line.
const MessageTag = "[hey-codex]"

const (
	writeMustAction   = "Codex CLI (council.sh implement) への委譲を検討してください"
	writeShouldAction = "Codex CLI に委譲すると効果的かもしれません"
)

// PromptMessage renders the advisory for a prompt classification.
// It returns "" for classifications that do not emit.
func PromptMessage(c Classification) string {
	switch c.Tier {
	case TierMust:
		msg := fmt.Sprintf("%s MUST delegate: Codex CLI への自動委譲を推奨します（トリガー: %s）\n", MessageTag, c.Trigger) +
			"   → council.sh implement でタスクを委譲してください"
		if c.HelperPath != "" {
			msg += "\n   council.sh: " + c.HelperPath
		}
		return msg
	case TierShould:
		return fmt.Sprintf("%s SHOULD delegate: Codex CLI に委譲すると効果的かもしれません（トリガー: %s）\n", MessageTag, c.Trigger) +
			"   → 委譲する場合は「codex に聞いて」と指示してください"
	default:
		return ""
	}
}

// WritePathMessage renders the advisory for a file about to be written.
func WritePathMessage(c Classification, rawPath string) string {
	var action string
	switch c.Tier {
	case TierMust:
		action = writeMustAction
	case TierShould:
		action = writeShouldAction
	default:
		return ""
	}

	lines := []string{
		fmt.Sprintf("%s %s delegate: %sの変更を検出しました", MessageTag, c.Tier, c.Label),
		"   → ファイル: " + rawPath,
		"   → " + action,
	}
	if c.Note != "" {
		lines = append(lines, "   → "+c.Note)
	}
	return strings.Join(lines, "\n")
}

// VerifyMessage suggests verifying a sensitive file that was just written.
func VerifyMessage(label string) string {
	return fmt.Sprintf("%s %sを変更しました。 Codex CLI (council.sh consult) で検証することを推奨します", MessageTag, label)
}

// ReviewMessage suggests a review once count distinct files were edited.
func ReviewMessage(count int) string {
	return fmt.Sprintf("%s %d ファイルを編集しました。 Codex CLI にレビューを依頼すると品質向上に効果的です\n", MessageTag, count) +
		"   → council.sh consult でレビューを依頼できます"
}
