package server

import (
	"fmt"
	"regexp"
	"strings"
)

func buildMetricsPrompt(p healthProfile) string {
	return strings.Join([]string{
		fmt.Sprintf("這是一位來自 %s 的 %d 歲 %s，其健康問題為「%s'。補充說明：%s", p.Country, p.Age, p.Gender, p.Condition, p.Notes),
		"",
		"請根據此問題生成 3 個不同的健康相關指標類別。",
		"每個類別必須以 '###' 開頭（例如 '### 睡眠品質'），並包含 3 個獨特的真實世界指標，格式為 '指標名稱: 68%'.",
		"所有百分比必須介於 25% 到 90% 之間。",
		"僅返回 3 個格式化的區塊，不要有任何介紹或解釋。",
	}, "\n")
}

func buildSummaryPrompt(p healthProfile, metrics []MetricGroup) string {
	return strings.Join([]string{
		fmt.Sprintf("任務：針對來自 %s、年齡約 %d 歲的 %s 群體，撰寫一份四段式健康分析，其主要問題為「%s」。請使用以下數據：%s。", p.Country, p.Age, p.Gender, p.Condition, metricsDigest(metrics)),
		"",
		"指令：",
		"1. **深入分析**：不要只重複數據，闡述這些比例對該群體意味著什麼，並分析指標之間的關聯。",
		"2. **內容豐富**：每段都提供有價值的背景資訊，語氣同理心且專業。",
		fmt.Sprintf("3. **匿名措辭**：嚴禁出現第二人稱或「該用戶/個體」，用「類似年齡段的 %s %s」等表述。", p.Country, p.Gender),
		"4. **整合數據**：每段自然融入至少一個具體百分比。",
	}, "\n") + "\n"
}

func buildSuggestionsPrompt(p healthProfile) string {
	return strings.Join([]string{
		fmt.Sprintf("為來自 %s、年齡約 %d 歲、關注「%s」的 %s 群體，提出 10 項具體而溫和的生活方式改善建議。", p.Country, p.Age, p.Condition, p.Gender),
		"請使用溫暖、支持的語氣，並加入合適的表情符號。",
		"⚠️ **嚴格指令**：",
		"- 不得使用姓名、第二人稱，也不要出現「當然可以」等客套開頭。",
		fmt.Sprintf("- 用「在 %s，同年齡段的 %s 群體…」等群體化表述。", p.Country, p.Gender),
	}, "\n") + "\n"
}

func metricsDigest(groups []MetricGroup) string {
	pairs := make([]string, 0, 9)
	for _, group := range groups {
		for i := 0; i < len(group.Labels) && i < len(group.Values); i++ {
			if len(pairs) == 9 {
				return strings.Join(pairs, ", ")
			}
			pairs = append(pairs, fmt.Sprintf("%s (%d%%)", group.Labels[i], group.Values[i]))
		}
	}
	return strings.Join(pairs, ", ")
}

// Models still open with a courtesy phrase now and then despite the prompt.
var courtesyOpenerPattern = regexp.MustCompile(`^\s*當然可以[！!]\s*`)

func stripCourtesyOpener(text string) string {
	return courtesyOpenerPattern.ReplaceAllString(text, "")
}
