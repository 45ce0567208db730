package voice

import "strings"

// DefaultLocale is used for language codes the application does not know.
const DefaultLocale = "en-US"

// localeForLang maps every supported language code to the regional locale
// tag preferred for voice selection.
var localeForLang = map[string]string{
	"en": "en-US",

	// Indian languages
	"hi": "hi-IN",
	"ta": "ta-IN",
	"te": "te-IN",
	"mr": "mr-IN",
	"bn": "bn-IN",
	"gu": "gu-IN",
	"kn": "kn-IN",
	"ml": "ml-IN",
	"pa": "pa-IN",
	"ur": "ur-PK",

	// European languages
	"es": "es-ES",
	"fr": "fr-FR",
	"de": "de-DE",
	"it": "it-IT",
	"pt": "pt-BR",
	"ru": "ru-RU",

	// Asian languages
	"zh": "zh-CN",
	"ja": "ja-JP",
	"ko": "ko-KR",
	"th": "th-TH",
	"vi": "vi-VN",

	// Middle-Eastern languages
	"ar": "ar-SA",
	"fa": "fa-IR",
	"tr": "tr-TR",
}

// sparseVoiceFallback names a substitute locale for languages with
// known-sparse platform voice coverage. The substitute is a related
// higher-coverage language, tried before generic prefix matching kicks in.
var sparseVoiceFallback = map[string]string{
	"kn": "hi-IN",
	"gu": "hi-IN",
	"pa": "hi-IN",
}

// displayName maps language codes to the labels shown in the UI.
var displayName = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
	"mr": "Marathi",
	"bn": "Bengali",
	"gu": "Gujarati",
	"kn": "Kannada",
	"ml": "Malayalam",
	"pa": "Punjabi",
	"ur": "Urdu",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"th": "Thai",
	"vi": "Vietnamese",
	"ar": "Arabic",
	"fa": "Persian",
	"tr": "Turkish",
}

// Supported returns the supported language codes in stable order.
func Supported() []string {
	codes := make([]string, 0, len(localeOrder))
	codes = append(codes, localeOrder...)
	return codes
}

// localeOrder fixes iteration order for Supported.
var localeOrder = []string{
	"en",
	"hi", "ta", "te", "mr", "bn", "gu", "kn", "ml", "pa", "ur",
	"es", "fr", "de", "it", "pt", "ru",
	"zh", "ja", "ko", "th", "vi",
	"ar", "fa", "tr",
}

// IsSupported reports whether the language code is one the application
// offers for translation.
func IsSupported(lang string) bool {
	_, ok := localeForLang[lang]
	return ok
}

// LocaleFor returns the preferred locale tag for a language code, or
// DefaultLocale for unrecognized codes.
func LocaleFor(lang string) string {
	if locale, ok := localeForLang[lang]; ok {
		return locale
	}
	return DefaultLocale
}

// DisplayName returns the human-readable name of a language code, falling
// back to the upper-cased code itself.
func DisplayName(lang string) string {
	if name, ok := displayName[lang]; ok {
		return name
	}
	return strings.ToUpper(lang)
}
