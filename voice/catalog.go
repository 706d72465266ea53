package voice

// Locale message catalogs. Alert text is generated in English; known phrases
// are translated before synthesis and unknown ones pass through unchanged so
// a missing entry degrades to English instead of silence.

const (
	LocaleEnglish = "en"
	LocaleHindi   = "hi"
)

const (
	PhraseNoAlerts    = "no alerts"
	PhraseMotorOn     = "motor switched on"
	PhraseMotorOff    = "motor switched off"
	PhraseHVOn        = "generator switched on"
	PhraseHVOff       = "generator switched off"
	PhraseHVAutoOn    = "generator auto mode on"
	PhraseHVAutoOff   = "generator auto mode off"
	PhraseVoiceBroken = "voice alerts unavailable"
)

var catalogs = map[string]map[string]string{
	LocaleHindi: {
		PhraseNoAlerts:  "कोई चेतावनी नहीं",
		PhraseMotorOn:   "मोटर चालू कर दी गई",
		PhraseMotorOff:  "मोटर बंद कर दी गई",
		PhraseHVOn:      "जनरेटर चालू कर दिया गया",
		PhraseHVOff:     "जनरेटर बंद कर दिया गया",
		PhraseHVAutoOn:  "जनरेटर ऑटो मोड चालू",
		PhraseHVAutoOff: "जनरेटर ऑटो मोड बंद",

		"plants wilting fast":      "पौधे तेज़ी से मुरझा रहे हैं",
		"fungal disease risk":      "फफूंद रोग का खतरा",
		"leaf rot risk":            "पत्ती सड़ने का खतरा",
		"leaf burn risk":           "पत्ती झुलसने का खतरा",
		"salt burn increases":      "नमक से नुकसान बढ़ रहा है",
		"root rot + fungus":        "जड़ सड़न और फफूंद",
		"chemical + heat damage":   "रसायन और गर्मी से नुकसान",
		"possible night intrusion": "रात में घुसपैठ की आशंका",
		"movement detected":        "हलचल का पता चला",
		"too cold":                 "बहुत ठंड",
		"extreme heat":             "अत्यधिक गर्मी",
		"too dry":                  "मिट्टी बहुत सूखी",
		"flooding":                 "खेत में जलभराव",
		"no data":                  "डेटा उपलब्ध नहीं",
	},
}

// Translate returns the locale's rendering of text, falling back to the
// input for unknown phrases or locales.
func Translate(locale, text string) string {
	catalog, ok := catalogs[locale]
	if !ok {
		return text
	}
	if translated, ok := catalog[text]; ok {
		return translated
	}
	return text
}

// SupportedLocale reports whether locale has first-class support.
func SupportedLocale(locale string) bool {
	return locale == LocaleEnglish || locale == LocaleHindi
}
