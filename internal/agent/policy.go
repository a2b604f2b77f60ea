package agent

import (
	"context"
	"log"

	"github.com/jamesbas/supplemental-pay-agent/internal/model"
)

// PolicyAgent 政策问答（HR 请求域）
// 以付款条款表为事实依据组织提示，文本生成全部交给外部推理服务
type PolicyAgent struct {
	deps *Deps
}

// NewPolicyAgent 创建政策处理器
func NewPolicyAgent(deps *Deps) *PolicyAgent {
	return &PolicyAgent{deps: deps}
}

const policyPrompt = `Based on the following supplemental pay policies, please provide a clear and concise response to my question.

For each relevant policy, provide:
1. The policy name or category
2. The conditions under which it applies
3. The applicable rates or rules

If a policy does not apply to the specific situation mentioned in the question, clearly state that.

Question: `

// Answer 回答政策类问题
func (a *PolicyAgent) Answer(ctx context.Context, query string) (string, error) {
	tables := a.deps.Tables()

	records := make([]model.Record, 0, tables.PaymentTerms.NumRows())
	for i := 0; i < tables.PaymentTerms.NumRows(); i++ {
		records = append(records, tables.PaymentTerms.Record(i))
	}

	facts := map[string]any{
		"payment_terms":       records,
		"payment_terms_count": len(records),
	}

	log.Printf("[agent] policy request, %d payment term row(s)", len(records))
	return a.deps.Gen.Generate(ctx, policyPrompt+query, facts)
}
