package server

import "strings"

// localeTW is the only locale this service serves.
const localeTW = "tw"

const (
	msgUnsupportedLocale = "此端點僅支援台灣繁體中文 (tw)。"
	msgInternalError     = "發生未預期的伺服器錯誤。"

	aiFallbackText   = "⚠️ 無法生成回應。"
	notesPlaceholder = "無補充說明"
)

type localeContent struct {
	EmailSubject  string
	ReportTitle   string
	Footer        string
	ProfileLabels map[string]string
}

var locales = map[string]localeContent{
	localeTW: {
		EmailSubject: "您的健康洞察報告",
		ReportTitle:  "🎉 全球健康洞察報告",
		Footer:       "📩 此報告已透過電子郵件傳送給您。所有內容均由 KataChat AI 生成，並符合個人資料保護法規定。",
		ProfileLabels: map[string]string{
			"name":         "法定全名",
			"chinese_name": "中文姓名",
			"dob":          "出生日期",
			"country":      "國家",
			"gender":       "性別",
			"age":          "年齡",
			"height":       "身高 (公分)",
			"weight":       "體重 (公斤)",
			"condition":    "主要問題",
			"details":      "補充說明",
			"referrer":     "推薦人",
			"angel":        "健康夥伴",
		},
	},
}

func normalizeLangCode(raw string) string {
	lang := strings.ToLower(strings.TrimSpace(raw))
	if lang == "" {
		return localeTW
	}
	return lang
}
