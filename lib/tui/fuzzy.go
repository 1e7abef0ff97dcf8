// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching one text against a pattern.
// Score is zero when the pattern does not match. Positions are rune
// offsets of the matched characters, for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

var initAlgorithm sync.Once

// FuzzyMatch runs fzf's V2 algorithm case-insensitively. An empty
// pattern scores zero. slab may be nil; callers matching many texts in
// a loop pass one from NewSlab to avoid per-call allocation.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	initAlgorithm.Do(func() { algo.Init("default") })

	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}

	match := FuzzyResult{Score: result.Score}
	if positions != nil {
		match.Positions = append([]int(nil), (*positions)...)
	}
	return match
}

// NewSlab allocates scratch space for repeated FuzzyMatch calls.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}
