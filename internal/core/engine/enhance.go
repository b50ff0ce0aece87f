package engine

import "strings"

type replacement struct {
	old string
	new string
}

// enhancements is applied in slice order, each rule acting on the output of
// the previous one. Overlapping keys are order-sensitive: digits must be
// spelled out before the punctuation rules run, and the table order is part
// of the observable output contract.
var enhancements = []replacement{
	// Religious phrases
	{"الله", "اللّٰه"},
	{"الرحمن", "الرَّحْمٰن"},
	{"الرحيم", "الرَّحِيم"},

	// Common academic terms
	{"التعليم", "التَّعْلِيم"},
	{"الدراسة", "الدِّرَاسَة"},
	{"المعرفة", "المَعْرِفَة"},
	{"الفهم", "الفَهْم"},

	// Numbers in Arabic
	{"1", "واحد"},
	{"2", "اثنان"},
	{"3", "ثلاثة"},
	{"4", "أربعة"},
	{"5", "خمسة"},

	// Punctuation for better speech
	{".", ".\n"},
	{"!", "!\n"},
	{"?", "؟\n"},
}

// EnhanceArabic applies the ordered substitution table used to prepare
// responses for speech synthesis and readability. It runs exactly once per
// provider response.
func EnhanceArabic(s string) string {
	if s == "" {
		return s
	}
	for _, r := range enhancements {
		s = strings.ReplaceAll(s, r.old, r.new)
	}
	return s
}
