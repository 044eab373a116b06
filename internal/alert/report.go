package alert

import (
	"fmt"
	"strings"
	"time"

	"github.com/arpi-platform/regwatch/internal/model"
)

// EmptyReport is the report body when no record crossed the threshold.
const EmptyReport = "当前没有高风险政策预警。"

// recommendedActions is the fixed closing section of every non-empty
// report.
var recommendedActions = []string{
	"1. 评估政策对现有业务的影响",
	"2. 与法务部门确认合规要求",
	"3. 制定相应的应对措施",
	"4. 持续监控政策实施细则",
}

// TextReport renders the ranked alert list as the fixed-format text report
// handed to the notification dispatcher: a header with generation timestamp
// and count, one block per alert, and the recommended actions list.
func TextReport(alerts []model.AlertRecord, generatedAt time.Time) string {
	if len(alerts) == 0 {
		return EmptyReport
	}

	var sb strings.Builder

	sb.WriteString("🚨 AI政策风险预警报告\n")
	fmt.Fprintf(&sb, "📅 生成时间: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "⚡ 预警数量: %d\n", len(alerts))
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n")

	for i, alert := range alerts {
		fmt.Fprintf(&sb, "\n📋 预警 %d: %s\n", i+1, alert.Title)
		fmt.Fprintf(&sb, "🏛️  发布部门: %s\n", alert.Department)
		fmt.Fprintf(&sb, "📅 发布日期: %s\n", alert.PublicationDate.Format(model.DateFormat))
		fmt.Fprintf(&sb, "⭐ 监管评分: %.1f/10\n", alert.RegulatoryScore)
		fmt.Fprintf(&sb, "🎯 涉及领域: %s\n", strings.Join(alert.AffectedDomains, ", "))
		fmt.Fprintf(&sb, "⚠️  风险因素: %s\n", strings.Join(alert.RiskFactors, ", "))
		fmt.Fprintf(&sb, "🔗 链接: %s\n", alert.URL)
		sb.WriteString(strings.Repeat("-", 40))
		sb.WriteString("\n")
	}

	sb.WriteString("\n💡 建议行动:\n")
	for _, action := range recommendedActions {
		sb.WriteString(action)
		sb.WriteString("\n")
	}

	return sb.String()
}
