// Package i18n holds the worksheet label catalog and registers it with
// golang.org/x/text/message.
package i18n

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	KeyVersion      = "worksheet.version"
	KeyAnswerKey    = "worksheet.answer_key"
	KeyAnswer       = "worksheet.answer"
	KeyName         = "worksheet.name"
	KeyDate         = "worksheet.date"
	KeySolution     = "worksheet.solution"
	KeyDefaultTitle = "worksheet.default_title"
	KeyTier         = "worksheet.tier"
)

// Family heading keys are "family.<identifier>".
func FamilyKey(family string) string { return "family." + family }

var catalogs = map[language.Tag]map[string]string{
	language.English: {
		KeyVersion:      "Version %d",
		KeyAnswerKey:    "Answer key",
		KeyAnswer:       "Answer",
		KeyName:         "Name",
		KeyDate:         "Date",
		KeySolution:     "Solution",
		KeyDefaultTitle: "Worksheet",
		KeyTier:         "level %d",

		"family.linear-equation":           "Linear equations",
		"family.quadratic-equation":        "Quadratic equations",
		"family.polynomial-simplification": "Expanding and simplifying",
		"family.derivative-evaluation":     "Derivatives",
		"family.definite-integral":         "Definite integrals",
		"family.word-problem":              "Word problems",
		"family.exponent-reduction":        "Laws of exponents",
	},
	language.Estonian: {
		KeyVersion:      "Variant %d",
		KeyAnswerKey:    "Vastused",
		KeyAnswer:       "Vastus",
		KeyName:         "Nimi",
		KeyDate:         "Kuupäev",
		KeySolution:     "Lahendus",
		KeyDefaultTitle: "Tööleht",
		KeyTier:         "tase %d",

		"family.linear-equation":           "Lineaarvõrrandid",
		"family.quadratic-equation":        "Ruutvõrrandid",
		"family.polynomial-simplification": "Avaldiste lihtsustamine",
		"family.derivative-evaluation":     "Tuletised",
		"family.definite-integral":         "Määratud integraalid",
		"family.word-problem":              "Tekstülesanded",
		"family.exponent-reduction":        "Astmete omadused",
	},
}

var supported []language.Tag

func init() {
	for tag, messages := range catalogs {
		supported = append(supported, tag)
		for key, value := range messages {
			if err := message.SetString(tag, key, value); err != nil {
				panic(err)
			}
		}
	}
	sort.Slice(supported, func(i, j int) bool { return supported[i].String() < supported[j].String() })
	// English first so it is the matcher fallback.
	for i, t := range supported {
		if t == language.English {
			supported[0], supported[i] = supported[i], supported[0]
		}
	}
}

// Supported returns the catalog languages, English first.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Printer returns a printer for the best catalog match of lang. Unknown or
// empty input falls back to English.
func Printer(lang string) *message.Printer {
	return message.NewPrinter(Match(lang))
}

// Match resolves a language string such as "et" or "en-GB" to a catalog
// tag.
func Match(lang string) language.Tag {
	m := language.NewMatcher(supported)
	tag, _ := language.MatchStrings(m, lang)
	base, _ := tag.Base()
	for _, t := range supported {
		if b, _ := t.Base(); b == base {
			return t
		}
	}
	return language.English
}
