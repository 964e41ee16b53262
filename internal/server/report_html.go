package server

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

const sectionHeadingStyle = "font-family: sans-serif; color: #333; border-bottom: 2px solid #4CAF50; padding-bottom: 5px;"

// reportFooterHTML is product copy and goes out verbatim.
const reportFooterHTML = `<div style="margin-top: 40px; border-left: 4px solid #4CAF50; padding-left: 15px; font-family: sans-serif;">
<h3 style="font-size: 22px; font-weight: bold; color: #333;">📊 由 KataChat AI 生成的洞察</h3>
<p style="font-size: 18px; color: #555; line-height: 1.6;">此健康報告是使用 KataChat 的專有 AI 模型生成的，基於：</p>
<ul style="list-style-type: disc; padding-left: 20px; font-size: 18px; color: #555; line-height: 1.6;">
<li>來自新加坡、馬來西亞和台灣用戶的匿名健康與生活方式資料庫</li>
<li>來自可信的 OpenAI 研究資料庫的全球健康基準和行為趨勢數據</li>
</ul>
<p style="font-size: 18px; color: #555; line-height: 1.6;">所有分析嚴格遵守個人資料保護法規，以保護您的個人資料，同時發掘有意義的健康洞察。</p>
<p style="font-size: 18px; color: #555; line-height: 1.6; margin-top: 15px;">🛡️ <strong>請注意：</strong>本報告並非醫療診斷。若有任何嚴重的健康問題，請諮詢持牌醫療專業人員。</p>
<p style="font-size: 18px; color: #555; line-height: 1.6; margin-top: 15px;">📬 <strong>附註：</strong>個人化報告將在 24-48 小時內傳送到您的電子信箱。若您想更詳細地探討報告結果，我們很樂意安排一個 15 分鐘的簡短通話。</p>
</div>`

func renderProfileTableHTML(p healthProfile, labels map[string]string) string {
	// Age 0 means the date of birth did not parse; the row drops out with
	// the other empty values.
	age := ""
	if p.Age != 0 {
		age = strconv.Itoa(p.Age)
	}
	rows := []struct {
		key   string
		value string
	}{
		{"name", p.Name},
		{"chinese_name", p.ChineseName},
		{"age", age},
		{"gender", p.Gender},
		{"country", p.Country},
		{"height", p.Height},
		{"weight", p.Weight},
		{"condition", p.Condition},
		{"details", p.Details},
		{"referrer", p.Referrer},
		{"angel", p.Angel},
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<h2 style="%s">個人資料摘要</h2>`, sectionHeadingStyle)
	b.WriteString(`<table style="width: 100%; border-collapse: collapse; font-family: sans-serif; margin-bottom: 30px;">`)
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(&b,
			`<tr style="border-bottom: 1px solid #eee;"><td style="padding: 12px; background-color: #f9f9f9; font-weight: bold; width: 150px;">%s</td><td style="padding: 12px;">%s</td></tr>`,
			html.EscapeString(labels[row.key]), html.EscapeString(row.value))
	}
	b.WriteString(`</table>`)
	return b.String()
}

func renderMetricChartsHTML(groups []MetricGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<h2 style="%s">健康指標圖表</h2>`, sectionHeadingStyle)
	for _, group := range groups {
		fmt.Fprintf(&b, `<h3 style="font-family: sans-serif; color: #333; margin-top: 20px;">%s</h3>`, html.EscapeString(group.Title))
		for i := 0; i < len(group.Labels) && i < len(group.Values); i++ {
			fmt.Fprintf(&b,
				`<div style="margin-bottom: 12px; font-family: sans-serif;"><p style="margin: 0 0 5px 0;">- %s: %d%%</p><div style="background-color: #e0e0e0; border-radius: 8px; width: 100%%; height: 16px;"><div style="background-color: #4CAF50; width: %d%%; height: 16px; border-radius: 8px;"></div></div></div>`,
				html.EscapeString(group.Labels[i]), group.Values[i], group.Values[i])
		}
	}
	return b.String()
}

func renderEmailReportHTML(p healthProfile, groups []MetricGroup, summary, suggestions string, content localeContent) string {
	var b strings.Builder
	b.WriteString(`<div style='font-family: sans-serif; color: #333; max-width: 800px; margin: auto; padding: 20px;'>`)
	fmt.Fprintf(&b, `<h1 style='text-align:center; color: #333;'>%s</h1>`, content.ReportTitle)
	b.WriteString(renderProfileTableHTML(p, content.ProfileLabels))
	b.WriteString(renderMetricChartsHTML(groups))

	b.WriteString(`<div style="margin-top: 30px;">`)
	fmt.Fprintf(&b, `<h2 style="%s">🧠 摘要</h2>`, sectionHeadingStyle)
	// The mail summary splits on double spaces, the web variant on blank
	// lines.
	for _, paragraph := range splitParagraphs(summary, "  ") {
		fmt.Fprintf(&b, `<p style='line-height:1.7; font-size:16px;'>%s</p>`, html.EscapeString(paragraph))
	}
	b.WriteString(`</div>`)

	b.WriteString(`<div style="margin-top: 30px;">`)
	fmt.Fprintf(&b, `<h2 style="%s">💡 生活建議</h2>`, sectionHeadingStyle)
	for _, line := range splitNonEmptyLines(suggestions) {
		fmt.Fprintf(&b, `<p style='margin:12px 0; font-size:16px; line-height:1.6;'>%s</p>`, html.EscapeString(line))
	}
	b.WriteString(`</div>`)

	b.WriteString(reportFooterHTML)
	b.WriteString(`</div>`)
	return b.String()
}

func renderWebReportHTML(summary, suggestions string) string {
	var b strings.Builder
	b.WriteString(`<div style='font-family: sans-serif; color: #333;'>`)
	b.WriteString(`<div style='font-size:24px; font-weight:bold; margin-top:30px;'>🧠 摘要:</div>`)
	for _, paragraph := range splitParagraphs(summary, "\n\n") {
		fmt.Fprintf(&b, `<p style='line-height:1.7; font-size:16px; margin-top:1em; margin-bottom:1em;'>%s</p>`, html.EscapeString(paragraph))
	}
	b.WriteString(`<div style='font-size:24px; font-weight:bold; margin-top:40px;'>💡 生活建議:</div>`)
	for _, line := range splitNonEmptyLines(suggestions) {
		fmt.Fprintf(&b, `<p style='margin:16px 0; font-size:17px; line-height:1.6;'>%s</p>`, html.EscapeString(line))
	}
	b.WriteString(reportFooterHTML)
	b.WriteString(`</div>`)
	return b.String()
}

func splitParagraphs(text, separator string) []string {
	parts := strings.Split(strings.TrimSpace(text), separator)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
