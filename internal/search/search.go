// Package search finds lyric lines by fuzzy query.
package search

import (
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// Match is one lyric line that satisfied a query.
type Match struct {
	Line           int    // Line index in the lyric sheet
	Text           string // Original line text
	MatchedIndexes []int  // Rune positions in Text that matched (for highlighting)
	Score          int    // Higher is better
}

// LineIndex implements sahilm/fuzzy.Source over lyric lines
type LineIndex struct {
	lines      []string
	lowerLines []string // Pre-computed lowercase lines
}

// String returns the lowercase line at index i (implements fuzzy.Source)
func (idx *LineIndex) String(i int) string { return idx.lowerLines[i] }

// Len returns the number of lines (implements fuzzy.Source)
func (idx *LineIndex) Len() int { return len(idx.lines) }

// NewLineIndex splits text into lines for searching.
func NewLineIndex(text string) *LineIndex {
	lines := strings.Split(text, "\n")
	lower := make([]string, len(lines))
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
		lower[i] = strings.ToLower(lines[i])
	}
	return &LineIndex{lines: lines, lowerLines: lower}
}

// Line returns the original text of line i.
func (idx *LineIndex) Line(i int) string {
	if i < 0 || i >= len(idx.lines) {
		return ""
	}
	return idx.lines[i]
}

// Service searches the current lyric sheet.
type Service struct {
	index  *LineIndex
	logger *slog.Logger
}

// NewService creates a search service over text.
func NewService(text string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{index: NewLineIndex(text), logger: logger}
}

// Reindex replaces the searchable text.
func (s *Service) Reindex(text string) {
	s.index = NewLineIndex(text)
}

// Search returns lines matching query, best first, at most limit results
// (limit <= 0 means no limit).
//
// Subsequence matching runs first. When it finds nothing, an accent- and
// case-insensitive pass ranks lines by edit distance, so "cafe" still finds
// "Café".
func (s *Service) Search(query string, limit int) []Match {
	query = strings.TrimSpace(query)
	if query == "" || s.index.Len() == 0 {
		return nil
	}

	results := s.subsequence(query)
	if len(results) == 0 {
		results = s.folded(query)
		if len(results) > 0 {
			s.logger.Debug("line search used folded fallback", "query", query, "results", len(results))
		}
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (s *Service) subsequence(query string) []Match {
	matches := fuzzy.FindFrom(strings.ToLower(query), s.index)
	results := make([]Match, 0, len(matches))
	for _, m := range matches {
		if strings.TrimSpace(s.index.lines[m.Index]) == "" {
			continue
		}
		results = append(results, Match{
			Line:           m.Index,
			Text:           s.index.lines[m.Index],
			MatchedIndexes: runeIndexes(s.index.lowerLines[m.Index], m.MatchedIndexes),
			Score:          m.Score,
		})
	}
	return results
}

// runeIndexes converts byte offsets into the lowercased line to rune
// positions. Lowercasing maps rune to rune, so these are also positions in
// the original text even where a rune's byte length changes ("İ" → "i").
func runeIndexes(lower string, byteIdx []int) []int {
	out := make([]int, len(byteIdx))
	for i, b := range byteIdx {
		out[i] = utf8.RuneCountInString(lower[:b])
	}
	return out
}

func (s *Service) folded(query string) []Match {
	ranks := lfuzzy.RankFindNormalizedFold(query, s.index.lines)
	sort.Stable(ranks)

	results := make([]Match, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, Match{
			Line:  r.OriginalIndex,
			Text:  r.Target,
			Score: -r.Distance,
		})
	}
	return results
}
