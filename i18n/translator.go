package i18n

// Translator retrieves localized messages for pipeline Issue codes.
// data provides optional metadata to embed in the message (for example,
// the $id or $ref target that triggered the diagnostic).
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "unsupported_schema_draft":
			return "サポートされていないスキーマドラフトです"
		case "unresolved_reference":
			return "$ref を解決できません"
		case "invalid_input":
			return "入力が不正です"
		case "merge_conflict":
			return "モデルのマージで競合が発生しました"
		}
	default: // "en"
		switch code {
		case "unsupported_schema_draft":
			return "unsupported schema draft"
		case "unresolved_reference":
			return "$ref could not be resolved"
		case "invalid_input":
			return "invalid schema input"
		case "merge_conflict":
			return "conflicting constraints during model merge"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
