package agent

import (
	"context"
	"log"

	"github.com/jamesbas/supplemental-pay-agent/internal/analysis"
)

// AnalyticsAgent 数据洞察（payroll 请求域）
// 团队汇总之外补上最近月份列的 IQR 离群点检测
type AnalyticsAgent struct {
	deps *Deps
}

// NewAnalyticsAgent 创建分析处理器
func NewAnalyticsAgent(deps *Deps) *AnalyticsAgent {
	return &AnalyticsAgent{deps: deps}
}

const analyticsPrompt = `Based on the following payment data and query, provide a comprehensive analysis.

Please provide:
1. A comprehensive analysis of the payment data
2. Identification of any trends, patterns, or anomalies
3. Recommendations based on your analysis
4. Any potential compliance or policy issues that need attention

Focus on actionable insights that would help a payroll manager.

Query: `

// Analyze 分析工资数据
func (a *AnalyticsAgent) Analyze(ctx context.Context, query string) (string, error) {
	tables := a.deps.Tables()
	team := analysis.AnalyzeTeam(tables.Employees, tables.PaymentTerms, tables.HoursClaims)

	// 离群点检测独立调用；数值异常折叠为 error 字段，不向路由层抛
	if column := analysis.LatestMonthColumn(tables.HoursClaims); column != "" {
		indices, err := analysis.FindOutliers(tables.HoursClaims, column, a.deps.multiplier())
		if err != nil {
			log.Printf("[agent] outlier detection on %q failed: %v", column, err)
			team.Error = err.Error()
		} else {
			team.OutlierIndices = indices
			log.Printf("[agent] outlier detection on %q: %d row(s)", column, len(indices))
		}
	}

	facts := map[string]any{
		"team_analysis": team,
	}
	return a.deps.Gen.Generate(ctx, analyticsPrompt+query, facts)
}
