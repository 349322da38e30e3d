package routing

import (
	"path"
	"strings"
)

// MatchKind selects which part of a file path a rule inspects.
type MatchKind int

const (
	// MatchPathContains matches a substring of the normalized path.
	MatchPathContains MatchKind = iota
	// MatchExtension matches the extension of the basename exactly.
	MatchExtension
	// MatchBasename matches the basename exactly.
	MatchBasename
	// MatchBasenamePrefix matches the start of the basename.
	MatchBasenamePrefix
)

// PathRule is one row of a path classification table.
type PathRule struct {
	Kind    MatchKind
	Pattern string
	Tier    Tier
	Label   string
	Note    string
}

// FilePath is a path prepared for rule matching.
type FilePath struct {
	Raw        string
	Normalized string
	Base       string
	Ext        string
}

const terminalAdvantageNote = "ターミナル操作は Codex が +11.9pt 優位です"

// SensitivePathRules are the MUST-tier rules. They double as the
// verification rules applied after a write.
var SensitivePathRules = []PathRule{
	{Kind: MatchPathContains, Pattern: ".github/workflows/", Tier: TierMust, Label: "CI/CD パイプライン", Note: terminalAdvantageNote},
	{Kind: MatchPathContains, Pattern: ".github/actions/", Tier: TierMust, Label: "GitHub Actions", Note: terminalAdvantageNote},
	{Kind: MatchExtension, Pattern: ".sh", Tier: TierMust, Label: "シェルスクリプト"},
	{Kind: MatchExtension, Pattern: ".bash", Tier: TierMust, Label: "Bash スクリプト"},
}

// ContainerPathRules are the SHOULD-tier container and compose rules.
var ContainerPathRules = []PathRule{
	{Kind: MatchBasename, Pattern: "Dockerfile", Tier: TierShould, Label: "Docker コンテナ"},
	{Kind: MatchBasename, Pattern: "docker-compose.yml", Tier: TierShould, Label: "Docker Compose"},
	{Kind: MatchBasename, Pattern: "docker-compose.yaml", Tier: TierShould, Label: "Docker Compose"},
	{Kind: MatchBasenamePrefix, Pattern: "docker-compose", Tier: TierShould, Label: "Docker Compose"},
	{Kind: MatchBasenamePrefix, Pattern: "Dockerfile", Tier: TierShould, Label: "Dockerfile"},
}

// WritePathRules is the full table consulted before a write.
var WritePathRules = concatRules(SensitivePathRules, ContainerPathRules)

func concatRules(tables ...[]PathRule) []PathRule {
	var out []PathRule
	for _, t := range tables {
		out = append(out, t...)
	}
	return out
}

// NewFilePath normalizes raw for matching. Backslashes become forward slashes.
func NewFilePath(raw string) FilePath {
	normalized := strings.ReplaceAll(raw, `\`, "/")
	base := path.Base(normalized)
	return FilePath{
		Raw:        raw,
		Normalized: normalized,
		Base:       base,
		Ext:        extension(base),
	}
}

// extension returns the suffix starting at the last dot of base. A leading
// dot does not start an extension, so ".bash" has none.
func extension(base string) string {
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 || base == ".." {
		return ""
	}
	return base[idx:]
}

// Matches reports whether the rule applies to p.
func (r PathRule) Matches(p FilePath) bool {
	switch r.Kind {
	case MatchPathContains:
		return strings.Contains(p.Normalized, r.Pattern)
	case MatchExtension:
		return p.Ext == r.Pattern
	case MatchBasename:
		return p.Base == r.Pattern
	case MatchBasenamePrefix:
		return strings.HasPrefix(p.Base, r.Pattern)
	default:
		return false
	}
}

// MatchPath returns the first rule in rules that applies to p.
func MatchPath(p FilePath, rules []PathRule) (PathRule, bool) {
	for _, r := range rules {
		if r.Matches(p) {
			return r, true
		}
	}
	return PathRule{}, false
}

// ClassifyWritePath classifies a file about to be written.
func ClassifyWritePath(raw string, rules []PathRule) Classification {
	if raw == "" {
		return Classification{Tier: TierNone}
	}
	rule, ok := MatchPath(NewFilePath(raw), rules)
	if !ok {
		return Classification{Tier: TierNone}
	}
	return Classification{
		Tier:    rule.Tier,
		Trigger: rule.Pattern,
		Label:   rule.Label,
		Note:    rule.Note,
	}
}

// VerifyLabel returns the category label when a just-written file matches one
// of the sensitive rules, regardless of the rule's tier.
func VerifyLabel(raw string, rules []PathRule) (string, bool) {
	if raw == "" {
		return "", false
	}
	rule, ok := MatchPath(NewFilePath(raw), rules)
	if !ok {
		return "", false
	}
	return rule.Label, true
}
