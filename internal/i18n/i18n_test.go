package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDefaultsToEnglish(t *testing.T) {
	assert.Equal(t, Welsh, Parse("cy"))
	assert.Equal(t, English, Parse("en"))
	assert.Equal(t, English, Parse(""))
	assert.Equal(t, English, Parse("fr"))
}

func TestTranslationLookup(t *testing.T) {
	assert.Equal(t, "Players", T(English, "nav.players"))
	assert.Equal(t, "Chwaraewyr", T(Welsh, "nav.players"))
}

func TestWelshFallsBackToEnglish(t *testing.T) {
	eng := english
	t.Cleanup(func() { english = eng })
	english["test.only_english"] = "English only"

	assert.Equal(t, "English only", T(Welsh, "test.only_english"))
	delete(english, "test.only_english")
}

func TestUnknownKeyReturnsKey(t *testing.T) {
	assert.Equal(t, "no.such.key", T(Welsh, "no.such.key"))
}

func TestEveryEnglishKeyHasWelsh(t *testing.T) {
	for key := range english {
		if key == "nav.switch" {
			continue
		}
		_, ok := welsh[key]
		assert.True(t, ok, "missing Welsh translation for %q", key)
	}
}
