package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// 终态固定回复：不进领域分发、不触发外部调用
const EmptyQueryReply = "Please provide a specific question so I can help you."

// UnknownRoleReply 不识别角色的固定诊断回复，属终态响应而非传输层错误
func UnknownRoleReply(role string) string {
	return fmt.Sprintf("Unsupported user role %q: expected hr, manager, or payroll.", role)
}

// 推理服务失败时的用户可见回复
const inferenceFailureReply = "Sorry, I was unable to generate a response right now. Please try again later."

// Router 无状态请求分发器
// 角色标签大小写不敏感地映射到三个分析域之一；
// 自身不生成任何文本，仅组织事实并转交对应处理器
type Router struct {
	policy    *PolicyAgent
	paycalc   *PayCalcAgent
	analytics *AnalyticsAgent
}

// NewRouter 创建分发器
func NewRouter(deps *Deps) *Router {
	return &Router{
		policy:    NewPolicyAgent(deps),
		paycalc:   NewPayCalcAgent(deps),
		analytics: NewAnalyticsAgent(deps),
	}
}

// Route 处理一次请求并返回文本回复
// 空白 query 与未知 role 返回固定文案；推理失败折叠为用户可见的失败消息
func (r *Router) Route(ctx context.Context, query, role, employeeID string) string {
	if strings.TrimSpace(query) == "" {
		return EmptyQueryReply
	}

	var (
		content string
		err     error
	)

	switch strings.ToLower(strings.TrimSpace(role)) {
	case "hr":
		content, err = r.policy.Answer(ctx, query)
	case "manager":
		if id := strings.TrimSpace(employeeID); id != "" {
			content, err = r.paycalc.AnalyzeEmployee(ctx, id, query)
		} else {
			content, err = r.paycalc.AnalyzeTeam(ctx, query)
		}
	case "payroll":
		content, err = r.analytics.Analyze(ctx, query)
	default:
		return UnknownRoleReply(role)
	}

	if err != nil {
		log.Printf("[agent] inference failed for role %q: %v", role, err)
		return inferenceFailureReply
	}
	return content
}
