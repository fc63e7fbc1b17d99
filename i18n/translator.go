package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "type" or "index").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return withDetail("型が不正です", data)
		case "required":
			return withDetail("必須項目が不足しています", data)
		case "unknown_key":
			return withDetail("未知のキーです", data)
		case "duplicate_key":
			return withDetail("キーが重複しています", data)
		case "unknown_type":
			return withDetail("未知のシグネチャ種別です", data)
		case "out_of_range":
			return withDetail("属性インデックスが範囲外です", data)
		case "invalid_position":
			return withDetail("位置指定が不正です", data)
		case "too_small":
			return withDetail("小さすぎます", data)
		case "parse_error":
			return withDetail("解析エラー", data)
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return withDetail("invalid type", data)
		case "required":
			return withDetail("required key missing", data)
		case "unknown_key":
			return withDetail("unknown key", data)
		case "duplicate_key":
			return withDetail("duplicate key", data)
		case "unknown_type":
			return withDetail("unknown signature type", data)
		case "out_of_range":
			return withDetail("feature index out of range", data)
		case "invalid_position":
			return withDetail("invalid position specifier", data)
		case "too_small":
			return withDetail("too small", data)
		case "parse_error":
			return withDetail("parse error", data)
		}
	}
	return code
}

// withDetail appends data["detail"] when present.
func withDetail(msg string, data map[string]string) string {
	if d := data["detail"]; d != "" {
		return msg + ": " + d
	}
	return msg
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
