package alert

import (
	"strings"
	"testing"
	"time"

	"github.com/arpi-platform/regwatch/internal/model"
)

// TestTextReportEmpty tests the no-alert body.
func TestTextReportEmpty(t *testing.T) {
	t.Parallel()

	if got := TextReport(nil, time.Now()); got != EmptyReport {
		t.Errorf("got %q, expected %q", got, EmptyReport)
	}
}

// TestTextReportSections tests the fixed section order of a non-empty
// report.
func TestTextReportSections(t *testing.T) {
	t.Parallel()

	alerts := []model.AlertRecord{
		{
			Title:           "关于加强算法安全的规定",
			URL:             "https://example.gov.cn/policy/1",
			Department:      "国家互联网信息办公室",
			PublicationDate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			RegulatoryScore: 9.2,
			AffectedDomains: []string{"算法透明度", "数据安全"},
			RiskFactors:     []string{model.RiskPenaltyClause, model.RiskHighEnforcement},
		},
	}

	generatedAt := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	report := TextReport(alerts, generatedAt)

	wantInOrder := []string{
		"🚨 AI政策风险预警报告",
		"📅 生成时间: 2024-01-15 09:30:00",
		"⚡ 预警数量: 1",
		"📋 预警 1: 关于加强算法安全的规定",
		"🏛️  发布部门: 国家互联网信息办公室",
		"📅 发布日期: 2023-12-01",
		"⭐ 监管评分: 9.2/10",
		"🎯 涉及领域: 算法透明度, 数据安全",
		"⚠️  风险因素: 包含处罚条款, 强制执行级别高",
		"🔗 链接: https://example.gov.cn/policy/1",
		"💡 建议行动:",
		"4. 持续监控政策实施细则",
	}

	pos := 0
	for _, want := range wantInOrder {
		idx := strings.Index(report[pos:], want)
		if idx < 0 {
			t.Fatalf("section %q missing or out of order\nreport:\n%s", want, report)
		}
		pos += idx + len(want)
	}
}

// TestTextReportDeterminism tests that the same alerts and timestamp yield
// a byte-identical report.
func TestTextReportDeterminism(t *testing.T) {
	t.Parallel()

	alerts := []model.AlertRecord{
		{Title: "甲", RegulatoryScore: 9.0, PublicationDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "乙", RegulatoryScore: 8.5, PublicationDate: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)},
	}
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := TextReport(alerts, at)
	for i := 0; i < 10; i++ {
		if TextReport(alerts, at) != first {
			t.Fatal("report is not deterministic")
		}
	}
}
