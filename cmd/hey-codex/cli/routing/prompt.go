package routing

import "strings"

// KeywordSet is one tier of prompt keywords, matched as lower-case substrings.
type KeywordSet struct {
	Tier     Tier
	Keywords []string
}

// KeepKeywords veto delegation outright. Sensitive work stays with the host.
var KeepKeywords = KeywordSet{
	Tier: TierKeep,
	Keywords: []string{
		"リファクタ", "refactor", "リファクタリング",
		"migration", "移行", "マイグレーション",
		"セキュリティ", "security", "認証", "auth",
		"暗号", "encrypt", "入力検証", "validation",
	},
}

// MustKeywords signal repeated failure, terminal and CI/CD work, scaffolding,
// or algorithmic optimization.
var MustKeywords = KeywordSet{
	Tier: TierMust,
	Keywords: []string{
		// repeated failure
		"また失敗", "still failing", "same error", "まだ動かない",
		"同じエラー", "again failed", "keeps failing",
		// terminal / CLI
		"bash script", "shell script", "シェルスクリプト",
		"ci/cd", "github actions", "パイプライン", "pipeline",
		"ターミナル", "terminal", "cli tool", "cliツール",
		// prototype / scaffold
		"プロトタイプ", "prototype", "scaffold", "boilerplate",
		"ボイラープレート", "スキャフォールド",
		// algorithm optimization
		"アルゴリズム", "algorithm", "最適化", "optimize",
		"計算量", "complexity", "time complexity",
	},
}

// ShouldKeywords signal design discussion, review, concurrency, API
// integration, or performance work.
var ShouldKeywords = KeywordSet{
	Tier: TierShould,
	Keywords: []string{
		"設計", "architecture", "design", "アーキテクチャ",
		"レビュー", "review", "セカンドオピニオン", "second opinion",
		"トレードオフ", "trade-off", "tradeoff",
		"race condition", "concurrent", "並行", "並列",
		"api連携", "api integration", "api統合",
		"performance", "パフォーマンス", "ベンチマーク", "benchmark",
	},
}

// PromptKeywordSets is the evaluation order for prompts.
var PromptKeywordSets = []KeywordSet{KeepKeywords, MustKeywords, ShouldKeywords}

// Match returns the first keyword in the set contained in the lower-cased text.
func (s KeywordSet) Match(lowered string) (string, bool) {
	for _, kw := range s.Keywords {
		if strings.Contains(lowered, kw) {
			return kw, true
		}
	}
	return "", false
}

// ClassifyPrompt classifies free text against sets in order. The first set
// with a matching keyword decides the result; later sets are not consulted.
func ClassifyPrompt(prompt string, sets []KeywordSet) Classification {
	lowered := strings.ToLower(prompt)
	for _, set := range sets {
		if kw, ok := set.Match(lowered); ok {
			return Classification{Tier: set.Tier, Trigger: kw}
		}
	}
	return Classification{Tier: TierNone}
}
