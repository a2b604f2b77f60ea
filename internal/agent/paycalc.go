package agent

import (
	"context"
	"log"

	"github.com/jamesbas/supplemental-pay-agent/internal/analysis"
)

// PayCalcAgent 薪酬核算（manager 请求域）
// 带工号走单员工视图，不带走团队视图
type PayCalcAgent struct {
	deps *Deps
}

// NewPayCalcAgent 创建薪酬核算处理器
func NewPayCalcAgent(deps *Deps) *PayCalcAgent {
	return &PayCalcAgent{deps: deps}
}

const employeePrompt = `Based on the following employee data and query, calculate the appropriate supplemental pay and provide a recommendation.

Please provide:
1. The calculated supplemental pay amount
2. An explanation of how the calculation was performed
3. A clear recommendation for approval or further review
4. Any relevant policy information that supports your recommendation

Query: `

const teamPrompt = `Based on the following team data and query, provide a team-wide analysis of supplemental pay.

Please cover team size, the distribution of payment terms, monthly hours totals and their trend direction.

Query: `

// AnalyzeEmployee 单员工薪酬分析
func (a *PayCalcAgent) AnalyzeEmployee(ctx context.Context, employeeID, query string) (string, error) {
	tables := a.deps.Tables()
	result := analysis.AnalyzeEmployee(employeeID, tables.Employees, tables.PaymentTerms, tables.HoursClaims)

	log.Printf("[agent] pay calculation for employee %s (found=%v)", employeeID, result.Found)

	facts := map[string]any{
		"employee_analysis": result,
	}
	return a.deps.Gen.Generate(ctx, employeePrompt+query, facts)
}

// AnalyzeTeam 团队薪酬分析
func (a *PayCalcAgent) AnalyzeTeam(ctx context.Context, query string) (string, error) {
	tables := a.deps.Tables()
	result := analysis.AnalyzeTeam(tables.Employees, tables.PaymentTerms, tables.HoursClaims)

	log.Printf("[agent] team pay analysis, team size %d", result.TeamSize)

	facts := map[string]any{
		"team_analysis": result,
	}
	return a.deps.Gen.Generate(ctx, teamPrompt+query, facts)
}
