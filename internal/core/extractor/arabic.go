package extractor

import (
	"strings"
	"unicode"
)

// arabicThreshold: share of alphabetic runes inside the Arabic block above
// which a text counts as Arabic-dominant.
const arabicThreshold = 0.3

// IsArabic reports whether letters in the Arabic Unicode block exceed 30%
// of the text's alphabetic characters.
func IsArabic(text string) bool {
	if text == "" {
		return false
	}
	var arabic, letters int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if r >= 0x0600 && r <= 0x06FF {
				arabic++
			}
		}
	}
	if letters == 0 {
		return false
	}
	return float64(arabic)/float64(letters) > arabicThreshold
}

// DetectLanguage tags a document "ar" or "en" from a sample of its content.
func DetectLanguage(text string) string {
	sample := text
	if r := []rune(text); len(r) > 1000 {
		sample = string(r[:1000])
	}
	if IsArabic(sample) {
		return "ar"
	}
	return "en"
}

// arabicNormalizer canonicalizes visually-ambiguous letter variants that
// Persian/Urdu keyboards and some PDF extractors leak into Arabic text.
var arabicNormalizer = strings.NewReplacer(
	"ی", "ي", // Farsi Yeh -> Yeh
	"ک", "ك", // Keheh -> Kaf
	"ە", "ة", // Ae -> Teh Marbuta
	"ٱ", "ا", // Alef Wasla -> Alef
)

func normalizeArabic(text string) string {
	return arabicNormalizer.Replace(text)
}
