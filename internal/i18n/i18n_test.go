package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
	}{
		{"", language.English},
		{"en", language.English},
		{"en-GB", language.English},
		{"et", language.Estonian},
		{"et-EE", language.Estonian},
		{"xx", language.English},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.in), tt.in)
	}
}

func TestPrinter(t *testing.T) {
	assert.Equal(t, "Version 2", Printer("en").Sprintf(KeyVersion, 2))
	assert.Equal(t, "Variant 2", Printer("et").Sprintf(KeyVersion, 2))
	assert.Equal(t, "Ruutvõrrandid", Printer("et").Sprintf(FamilyKey("quadratic-equation")))
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	en := catalogs[language.English]
	for tag, messages := range catalogs {
		assert.Len(t, messages, len(en), tag.String())
		for key := range en {
			_, ok := messages[key]
			assert.True(t, ok, "%s missing %s", tag, key)
		}
	}
}

func TestSupported_EnglishFirst(t *testing.T) {
	tags := Supported()
	assert.Equal(t, language.English, tags[0])
	assert.Len(t, tags, 2)
}
