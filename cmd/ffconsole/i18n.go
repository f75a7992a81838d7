// Package main provides localization for the ffconsole CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Translated status log for browser media tools": "ブラウザメディアツール向けの翻訳付きステータスログ",

		// Global flags
		"YAML configuration file":                                "YAML設定ファイル",
		"Active locale (e.g. zh-CN, en)":                         "使用するロケール（例: zh-CN, en）",
		"Locale used when a label is missing":                    "ラベルがない場合に使うロケール",
		"Directory of extra locale catalogs":                     "追加ロケールカタログのディレクトリ",
		"Append every line to this file (.jsonl for JSON lines)": "すべての行をこのファイルに追記（.jsonl で JSON Lines）",
		"Do not print lines to the terminal":                     "端末に行を出力しない",
		"Keep at most this many lines in memory (0 = unbounded)": "メモリに保持する最大行数（0 = 無制限）",

		// Commands
		"Append one line to the log":                  "ログに1行追加",
		"Line level (info, success, error)":           "行のレベル（info, success, error）",
		"Inspect MP4 files and log their tracks":      "MP4ファイルを調べてトラックをログに記録",
		"Save a transcript (.md, .json or text)":      "記録を保存（.md, .json またはテキスト）",
		"Serve the log and web shell over HTTP":       "ログとWebシェルをHTTPで配信",
		"Listen address":                              "待ち受けアドレス",
		"Serve the web shell from this directory":     "このディレクトリからWebシェルを配信",
		"Disable COOP/COEP headers":                   "COOP/COEPヘッダーを無効化",
		"List catalog locales and their level labels": "カタログのロケールとレベルラベルを一覧表示",
		"Show version information":                    "バージョン情報を表示",
		"ffconsole version %s":                        "ffconsole バージョン %s",

		// Runtime messages
		"Unknown level: %s":              "不明なレベル: %s",
		"At least one file is required":  "ファイルを1つ以上指定してください",
		"Probing %s":                     "%s を解析中",
		"Failed to probe %s: %s":         "%s の解析に失敗しました: %s",
		"Transcript saved to %s":         "記録を %s に保存しました",
		"Failed to write transcript: %s": "記録の書き込みに失敗しました: %s",
		"Serving on %s":                  "%s で配信中",
		"Server stopped":                 "サーバーを停止しました",
	})

	l10n.Register("zh", l10n.LexiconMap{
		"Translated status log for browser media tools": "面向浏览器媒体工具的多语言状态日志",

		"YAML configuration file":                                "YAML 配置文件",
		"Active locale (e.g. zh-CN, en)":                         "当前语言（例如 zh-CN, en）",
		"Locale used when a label is missing":                    "缺少标签时使用的语言",
		"Directory of extra locale catalogs":                     "额外语言目录",
		"Append every line to this file (.jsonl for JSON lines)": "将每一行追加到此文件（.jsonl 为 JSON Lines）",
		"Do not print lines to the terminal":                     "不在终端输出",
		"Keep at most this many lines in memory (0 = unbounded)": "内存中最多保留的行数（0 = 不限）",

		"Append one line to the log":                  "向日志追加一行",
		"Line level (info, success, error)":           "行级别（info, success, error）",
		"Inspect MP4 files and log their tracks":      "检查 MP4 文件并记录其轨道",
		"Save a transcript (.md, .json or text)":      "保存记录（.md, .json 或文本）",
		"Serve the log and web shell over HTTP":       "通过 HTTP 提供日志和网页",
		"Listen address":                              "监听地址",
		"Serve the web shell from this directory":     "从此目录提供网页",
		"Disable COOP/COEP headers":                   "禁用 COOP/COEP 头",
		"List catalog locales and their level labels": "列出语言及其级别标签",
		"Show version information":                    "显示版本信息",
		"ffconsole version %s":                        "ffconsole 版本 %s",

		"Unknown level: %s":              "未知级别: %s",
		"At least one file is required":  "至少需要一个文件",
		"Probing %s":                     "正在检查 %s",
		"Failed to probe %s: %s":         "检查 %s 失败: %s",
		"Transcript saved to %s":         "记录已保存到 %s",
		"Failed to write transcript: %s": "写入记录失败: %s",
		"Serving on %s":                  "正在 %s 上提供服务",
		"Server stopped":                 "服务已停止",
	})
}
