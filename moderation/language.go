package moderation

import "github.com/abadojack/whatlanggo"

// DetectLanguage returns the ISO-639-1 code of the text's language, "" when
// detection is not confident enough to be useful.
func DetectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
