package bible

import "sort"

// Translation identifies one scripture edition the bot can serve. The ESV is
// served by the ESV API directly; every other edition maps to an opaque
// API.Bible identifier.
type Translation struct {
	Code    string
	Name    string
	BibleID string // empty for the ESV, which does not go through API.Bible
}

// DefaultCode is used when a user has no stored preference and passes no
// explicit translation.
const DefaultCode = "ESV"

var translations = map[string]Translation{
	"ESV":    {Code: "ESV", Name: "English Standard Version"},
	"KJV":    {Code: "KJV", Name: "King James Version", BibleID: "de4e12af7f28f599-02"},
	"KJVA":   {Code: "KJVA", Name: "King James Version with Apocrypha", BibleID: "de4e12af7f28f599-01"},
	"ASV":    {Code: "ASV", Name: "American Standard Version", BibleID: "06125adad2d5898a-01"},
	"BSB":    {Code: "BSB", Name: "Berean Standard Bible", BibleID: "bba9f40183526463-01"},
	"DRA":    {Code: "DRA", Name: "Douay-Rheims American 1899", BibleID: "179568874c45066f-01"},
	"FBV":    {Code: "FBV", Name: "Free Bible Version", BibleID: "65eec8e0b60e656b-01"},
	"GNV":    {Code: "GNV", Name: "Geneva Bible", BibleID: "c315fa9f71d4af3a-01"},
	"LSV":    {Code: "LSV", Name: "Literal Standard Version", BibleID: "01b29f4b342acc35-01"},
	"WEB":    {Code: "WEB", Name: "World English Bible", BibleID: "9879dbb7cfe39e4d-04"},
	"WEBBE":  {Code: "WEBBE", Name: "World English Bible, British Edition", BibleID: "7142879509583d59-04"},
	"WMB":    {Code: "WMB", Name: "World Messianic Bible", BibleID: "f72b840c855f362c-04"},
	"WMBBE":  {Code: "WMBBE", Name: "World Messianic Bible, British Edition", BibleID: "04da588535d2f823-04"},
	"OEB":    {Code: "OEB", Name: "Open English Bible", BibleID: "9879dbb7cfe39e4d-01"},
	"T4T":    {Code: "T4T", Name: "Translation for Translators", BibleID: "5b79bd21a8c0a61e-01"},
	"TCENT":  {Code: "TCENT", Name: "Text-Critical English New Testament", BibleID: "3a1b8f2d44c10e6a-01"},
	"LSG":    {Code: "LSG", Name: "Louis Segond 1910", BibleID: "a93a92589195411f-01"},
	"RVR09":  {Code: "RVR09", Name: "Reina Valera 1909", BibleID: "592420522e16049f-01"},
	"LUT12":  {Code: "LUT12", Name: "Lutherbibel 1912", BibleID: "95410db44ef800c1-01"},
	"SBLGNT": {Code: "SBLGNT", Name: "SBL Greek New Testament", BibleID: "7644de2e4c5188e5-01"},
	"WLC":    {Code: "WLC", Name: "Westminster Leningrad Codex", BibleID: "2c500771ea16da93-01"},
	"VULG":   {Code: "VULG", Name: "Clementine Vulgate", BibleID: "3e0eed1f2a8f5c88-01"},
	"CPDV":   {Code: "CPDV", Name: "Catholic Public Domain Version", BibleID: "9b0a1f446ec1a9b2-01"},
}

// Lookup returns the translation for a code, matching case-sensitively.
func Lookup(code string) (Translation, bool) {
	t, ok := translations[code]
	return t, ok
}

// IsValid reports whether code names a supported translation.
func IsValid(code string) bool {
	_, ok := translations[code]
	return ok
}

// Default returns the fallback translation.
func Default() Translation {
	return translations[DefaultCode]
}

// All returns every supported translation sorted by code.
func All() []Translation {
	out := make([]Translation, 0, len(translations))
	for _, t := range translations {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
