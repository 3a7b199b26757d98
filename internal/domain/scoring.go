package domain

import (
	"math"
	"sort"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier words in the title are better)
	ScorePositionBonus = 10.0

	// Whole-title match bonus
	ScoreExactTitleBonus = 200.0

	// Field weights
	WeightTitle       = 1.0
	WeightSource      = 0.6
	WeightDescription = 0.4

	// fuzzyMinLength is the shortest fragment eligible for fuzzy matching.
	fuzzyMinLength = 4
)

// Ranked is an article with its relevance score for a query
type Ranked struct {
	Article Article
	Score   float64
}

// Score calculates the relevance of an article for a query.
// Every query fragment must match at least one word, otherwise the score is 0.
func Score(query *Query, article Article) float64 {
	if query.Empty() {
		return 0.0
	}

	titleWords := Words(article.Title)
	sourceWords := Words(article.Source.Name)
	descWords := Words(article.Description)

	if strings.Join(titleWords, " ") == strings.Join(query.Fragments, " ") {
		return ScoreExactMatch + ScoreExactTitleBonus
	}

	var total float64
	for _, frag := range query.Fragments {
		best := math.Max(
			bestFragmentScore(frag, titleWords, true)*WeightTitle,
			math.Max(
				bestFragmentScore(frag, sourceWords, false)*WeightSource,
				bestFragmentScore(frag, descWords, false)*WeightDescription,
			),
		)
		if best == 0.0 {
			return 0.0
		}
		total += best
	}

	return total
}

// bestFragmentScore returns the best score of frag against any of words
func bestFragmentScore(frag string, words []string, positional bool) float64 {
	best := 0.0
	for i, w := range words {
		pos := 0
		if positional {
			pos = i
		}
		if s := scoreFragment(frag, w, pos); s > best {
			best = s
		}
	}
	return best
}

// scoreFragment scores a single query fragment against a word
func scoreFragment(queryFrag, word string, position int) float64 {
	queryFrag = normalizeFragment(queryFrag)
	word = normalizeFragment(word)

	if queryFrag == "" || word == "" {
		return 0.0
	}

	// Exact match
	if queryFrag == word {
		return ScoreExactMatch + calculatePositionBonus(position)
	}

	// Prefix match
	if strings.HasPrefix(word, queryFrag) {
		return ScorePrefixMatch + calculatePositionBonus(position)
	}

	// Substring match
	if strings.Contains(word, queryFrag) {
		index := strings.Index(word, queryFrag)
		// Earlier substring matches get higher score
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(word)))
		return ScoreSubstringMatch + substringBonus
	}

	if len(queryFrag) < fuzzyMinLength {
		return 0.0
	}

	// Fuzzy match
	similarity := calculateSimilarity(queryFrag, word)
	if similarity > 0.8 {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// calculatePositionBonus gives bonus for earlier positions
func calculatePositionBonus(position int) float64 {
	return ScorePositionBonus * math.Exp(-float64(position)*0.3)
}

// calculateSimilarity calculates fuzzy similarity between two strings
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	// Penalize large length differences
	shorter, longer := len(s1), len(s2)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if float64(shorter)/float64(longer) < 0.5 {
		return 0.0
	}

	// Simple similarity: ratio of matching characters
	matches := 0
	for _, c := range s1 {
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}

	return float64(matches) / float64(len([]rune(s1)))
}

// RankArticles scores articles against a query and returns the matching ones,
// best first. Articles with equal scores keep their input order.
func RankArticles(query *Query, articles []Article) []Ranked {
	ranked := make([]Ranked, 0, len(articles))
	for _, a := range articles {
		score := Score(query, a)
		if score == 0.0 {
			continue
		}
		ranked = append(ranked, Ranked{Article: a, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
