package tabular

import (
	"strings"

	"github.com/jamesbas/supplemental-pay-agent/internal/model"
)

// ReconciliationResult 规范化结果：改名后的新表 + 未匹配到的必备字段
// 未匹配字段只作告警上报，不阻断后续处理，是否致命由调用方裁决
type ReconciliationResult struct {
	Table           *model.Table
	UnmatchedFields []string
}

// Reconcile 将源表头对齐到规范字段名
// 规则：字段名已精确存在则不动；否则按表内既有列序查找首个模糊命中者改名，
// 结果确定；同一列不会被两个字段重复占用。对入参只读，返回新表。
func Reconcile(t *model.Table, requiredFields []string) ReconciliationResult {
	out := t.Clone()
	claimed := make(map[int]bool, len(requiredFields))
	unmatched := []string{}

	for _, field := range requiredFields {
		idx := out.ColumnIndex(field)
		if idx >= 0 {
			claimed[idx] = true
			continue
		}

		renamed := false
		for i, col := range out.Columns {
			if claimed[i] {
				continue
			}
			if headerMatches(col, field) {
				out.Columns[i] = field
				claimed[i] = true
				renamed = true
				break
			}
		}
		if !renamed {
			unmatched = append(unmatched, field)
		}
	}

	return ReconciliationResult{Table: out, UnmatchedFields: unmatched}
}

// headerMatches 大小写不敏感的子串包含判定
// 先剔除空白与连字符再比较：规范名是无空格驼峰（PaymentTerms），
// 源表头常带空格（"Payment Terms"）。双向包含，短写表头也能命中。
func headerMatches(column, field string) bool {
	c := normalizeHeader(column)
	f := normalizeHeader(field)
	if c == "" || f == "" {
		return false
	}
	return strings.Contains(c, f) || strings.Contains(f, c)
}

// normalizeHeader 规范化表头用于比较
func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, ch := range []string{" ", "\t", "\n", "\r", "_", "-"} {
		name = strings.ReplaceAll(name, ch, "")
	}
	return name
}
