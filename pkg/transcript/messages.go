package transcript

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Session Log": "セッションログ",
		"Generated":   "生成日時",
		"Locale":      "ロケール",
		"Entries":     "件数",
		"Errors":      "エラー",
		"No entries":  "エントリはありません",
		"Time":        "時刻",
		"Level":       "レベル",
		"Message":     "メッセージ",
	})

	l10n.Register("zh", l10n.LexiconMap{
		"Session Log": "会话日志",
		"Generated":   "生成时间",
		"Locale":      "语言",
		"Entries":     "条目",
		"Errors":      "错误",
		"No entries":  "没有条目",
		"Time":        "时间",
		"Level":       "级别",
		"Message":     "消息",
	})
}
