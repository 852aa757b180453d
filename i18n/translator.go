package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "size").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "no_such_field":
			return "フィールドが存在しません"
		case "no_such_branch":
			return "ブランチが存在しません"
		case "index_out_of_range":
			return "インデックスが範囲外です"
		case "reserved_name":
			return "予約された名前です"
		case "unresolvable_kind":
			return "解決できないスキーマ種別です"
		case "invalid_value":
			return "値が不正です"
		case "invalid_operation":
			return "操作が不正です"
		case "released_value":
			return "解放済みの値です"
		case "schema_mismatch":
			return "スキーマが一致しません"
		case "encode_error":
			return "エンコードエラー"
		}
	default: // "en"
		switch code {
		case "no_such_field":
			return "no such field"
		case "no_such_branch":
			return "no such branch"
		case "index_out_of_range":
			return "index out of range"
		case "reserved_name":
			return "reserved name"
		case "unresolvable_kind":
			return "unresolvable schema kind"
		case "invalid_value":
			return "invalid value"
		case "invalid_operation":
			return "invalid operation"
		case "released_value":
			return "value has been released"
		case "schema_mismatch":
			return "schema mismatch"
		case "encode_error":
			return "encode error"
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
