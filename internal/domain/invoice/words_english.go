package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	englishOnes = []string{
		"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven",
		"Eight", "Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen",
		"Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen",
	}
	englishTens = []string{
		"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
		"Eighty", "Ninety",
	}
	englishScales = []string{"", " Thousand", " Million", " Billion"}
)

// EnglishFormatter spells amounts out in English words, e.g.
// "One Hundred Twenty Three Dollars and Forty Five Cents".
type EnglishFormatter struct{}

// NewEnglishFormatter creates the English amount formatter
func NewEnglishFormatter() *EnglishFormatter {
	return &EnglishFormatter{}
}

// Language returns the formatter language
func (f *EnglishFormatter) Language() Language {
	return LanguageEnglish
}

// Format spells the amount out with the given currency nouns
func (f *EnglishFormatter) Format(amount decimal.Decimal, unit, subunit CurrencyNouns) (string, error) {
	units, cents, err := splitAmount(amount)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(englishNumber(units))
	sb.WriteString(" ")
	sb.WriteString(englishNoun(units, unit))

	if cents > 0 {
		sb.WriteString(" and ")
		sb.WriteString(englishNumber(cents))
		sb.WriteString(" ")
		sb.WriteString(englishNoun(cents, subunit))
	}

	return sb.String(), nil
}

// englishNoun picks the singular noun for exactly one, plural otherwise
func englishNoun(n int64, nouns CurrencyNouns) string {
	if n == 1 {
		return nouns.Singular
	}
	return nouns.Plural
}

// englishNumber spells a non-negative integer in English words
func englishNumber(n int64) string {
	if n == 0 {
		return englishOnes[0]
	}

	// break into three-digit groups, least significant first
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == 0 {
			continue
		}
		parts = append(parts, englishGroup(groups[i])+englishScales[i])
	}

	return strings.Join(parts, " ")
}

// englishGroup spells a number between 1 and 999
func englishGroup(n int64) string {
	var parts []string

	if n >= 100 {
		parts = append(parts, englishOnes[n/100]+" Hundred")
		n %= 100
	}

	switch {
	case n >= 20:
		word := englishTens[n/10]
		if rest := n % 10; rest > 0 {
			word += " " + englishOnes[rest]
		}
		parts = append(parts, word)
	case n > 0:
		parts = append(parts, englishOnes[n])
	}

	return strings.Join(parts, " ")
}
