// Package redact scrubs credentials from prompt text before it reaches a log.
package redact

import (
	"log/slog"
	"math"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"
)

// Placeholder replaces every redacted span.
const Placeholder = "REDACTED"

// tokenPattern matches runs that could be keys or tokens.
var tokenPattern = regexp.MustCompile(`[A-Za-z0-9/+_=-]{10,}`)

// entropyThreshold is the Shannon entropy above which a token is treated as
// a secret. Identifiers and words stay well below it; API keys sit above 5.
const entropyThreshold = 4.5

var (
	detector     *detect.Detector
	detectorOnce sync.Once
)

func getDetector() *detect.Detector {
	detectorOnce.Do(func() {
		d, err := detect.NewDetectorDefaultConfig()
		if err != nil {
			return
		}
		detector = d
	})
	return detector
}

type span struct{ start, end int }

// String returns s with secrets replaced by Placeholder. A span is redacted
// when it is a high-entropy token or when a gitleaks rule matches it.
func String(s string) string {
	spans := append(entropySpans(s), ruleSpans(s)...)
	if len(spans) == 0 {
		return s
	}

	var b strings.Builder
	prev := 0
	for _, sp := range mergeSpans(spans) {
		b.WriteString(s[prev:sp.start])
		b.WriteString(Placeholder)
		prev = sp.end
	}
	b.WriteString(s[prev:])
	return b.String()
}

// Attr returns a string log attribute whose value has been redacted.
func Attr(key, value string) slog.Attr {
	return slog.String(key, String(value))
}

func entropySpans(s string) []span {
	var out []span
	for _, loc := range tokenPattern.FindAllStringIndex(s, -1) {
		if shannonEntropy(s[loc[0]:loc[1]]) > entropyThreshold {
			out = append(out, span{loc[0], loc[1]})
		}
	}
	return out
}

// ruleSpans locates every occurrence of each secret gitleaks reports.
func ruleSpans(s string) []span {
	d := getDetector()
	if d == nil {
		return nil
	}
	var out []span
	for _, f := range d.DetectString(s) {
		if f.Secret == "" {
			continue
		}
		for from := 0; ; {
			idx := strings.Index(s[from:], f.Secret)
			if idx < 0 {
				break
			}
			start := from + idx
			out = append(out, span{start, start + len(f.Secret)})
			from = start + len(f.Secret)
		}
	}
	return out
}

// mergeSpans sorts spans and joins the ones that overlap or touch.
func mergeSpans(spans []span) []span {
	slices.SortFunc(spans, func(a, b span) int { return a.start - b.start })
	merged := []span{spans[0]}
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.start > last.end {
			merged = append(merged, sp)
			continue
		}
		last.end = max(last.end, sp.end)
	}
	return merged
}

func shannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}
	var freq [256]int
	for i := range len(s) {
		freq[s[i]]++
	}
	n := float64(len(s))
	var h float64
	for _, c := range freq {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}
