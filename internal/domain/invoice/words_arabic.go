package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	arabicOnes = []string{
		"صفر", "واحد", "اثنان", "ثلاثة", "أربعة", "خمسة",
		"ستة", "سبعة", "ثمانية", "تسعة", "عشرة",
	}
	arabicTens = []string{
		"", "", "عشرون", "ثلاثون", "أربعون", "خمسون",
		"ستون", "سبعون", "ثمانون", "تسعون",
	}
	arabicHundreds = []string{
		"", "مائة", "مائتان", "ثلاثمائة", "أربعمائة", "خمسمائة",
		"ستمائة", "سبعمائة", "ثمانمائة", "تسعمائة",
	}
	// scale words by group index: singular, dual, plural of three to ten
	arabicScales = [][3]string{
		{"", "", ""},
		{"ألف", "ألفان", "آلاف"},
		{"مليون", "مليونان", "ملايين"},
		{"مليار", "ملياران", "مليارات"},
	}
)

// ArabicFormatter spells amounts out in Arabic words. Units come before
// tens joined with the conjunction, e.g. 25 is "خمسة وعشرون", and dual
// forms replace the numeral for two, e.g. 2000 is "ألفان".
type ArabicFormatter struct{}

// NewArabicFormatter creates the Arabic amount formatter
func NewArabicFormatter() *ArabicFormatter {
	return &ArabicFormatter{}
}

// Language returns the formatter language
func (f *ArabicFormatter) Language() Language {
	return LanguageArabic
}

// Format spells the amount out with the given currency nouns
func (f *ArabicFormatter) Format(amount decimal.Decimal, unit, subunit CurrencyNouns) (string, error) {
	units, cents, err := splitAmount(amount)
	if err != nil {
		return "", err
	}

	result := arabicAmount(units, unit)
	if cents > 0 {
		result += " و" + arabicAmount(cents, subunit)
	}

	return result, nil
}

// arabicAmount spells a count together with its currency noun, applying
// singular, dual and plural agreement.
func arabicAmount(n int64, nouns CurrencyNouns) string {
	switch {
	case n == 0:
		return arabicOnes[0] + " " + nouns.Singular
	case n == 1:
		return nouns.Singular + " واحد"
	case n == 2:
		return nouns.Dual
	case n >= 3 && n <= 10:
		return arabicNumber(n) + " " + nouns.Plural
	default:
		return arabicNumber(n) + " " + nouns.Singular
	}
}

// arabicNumber spells a positive integer in Arabic words
func arabicNumber(n int64) string {
	// break into three-digit groups, least significant first
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			continue
		}
		parts = append(parts, arabicScaledGroup(g, i))
	}

	return strings.Join(parts, " و")
}

// arabicScaledGroup spells a three-digit group at the given scale. One
// and two of a scale use the bare singular and dual scale words.
func arabicScaledGroup(g int64, scale int) string {
	if scale == 0 {
		return arabicGroup(g)
	}

	words := arabicScales[scale]
	switch {
	case g == 1:
		return words[0]
	case g == 2:
		return words[1]
	case g >= 3 && g <= 10:
		return arabicGroup(g) + " " + words[2]
	default:
		return arabicGroup(g) + " " + words[0]
	}
}

// arabicGroup spells a number between 1 and 999
func arabicGroup(n int64) string {
	var parts []string

	if n >= 100 {
		parts = append(parts, arabicHundreds[n/100])
		n %= 100
	}

	switch {
	case n == 0:
	case n <= 10:
		parts = append(parts, arabicOnes[n])
	case n == 11:
		parts = append(parts, "أحد عشر")
	case n == 12:
		parts = append(parts, "اثنا عشر")
	case n < 20:
		parts = append(parts, arabicOnes[n-10]+" عشر")
	default:
		tens := arabicTens[n/10]
		if rest := n % 10; rest > 0 {
			// units precede tens: five-and-twenty
			parts = append(parts, arabicOnes[rest]+" و"+tens)
		} else {
			parts = append(parts, tens)
		}
	}

	return strings.Join(parts, " و")
}
