package extract

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/jamesbas/supplemental-pay-agent/internal/model"
	"github.com/jamesbas/supplemental-pay-agent/internal/tabular"
)

// Kind 实体类别，固定闭集
type Kind int

const (
	KindEmployee Kind = iota
	KindPaymentTerms
	KindHoursClaims
)

// String 类别名
func (k Kind) String() string {
	switch k {
	case KindEmployee:
		return "employee"
	case KindPaymentTerms:
		return "payment_terms"
	case KindHoursClaims:
		return "hours_claims"
	}
	return "unknown"
}

// entitySpec 类别配置：文件名特征 + 必备规范字段
// 三类共用同一套提取算法，仅由配置区分
type entitySpec struct {
	patterns []string
	fields   []string
}

var entitySpecs = map[Kind]entitySpec{
	KindEmployee: {
		patterns: []string{"Employee_Data", "EmpID_Legacy_Country_Payments_Hourly"},
		fields:   model.EmployeeFields,
	},
	KindPaymentTerms: {
		patterns: []string{"Payment_Terms", "Standby_Callout_Overtime_Shift_Payment"},
		fields:   model.PaymentTermsFields,
	},
	KindHoursClaims: {
		patterns: []string{"Hours_Claims", "Emp_Wage_Hours"},
		fields:   model.HoursClaimsFields,
	},
}

// Extractor 从候选文件中选出、加载并规范化一类实体表
type Extractor struct {
	kind   Kind
	loader *tabular.Loader
}

// NewExtractor 创建指定类别的提取器
func NewExtractor(kind Kind, loader *tabular.Loader) *Extractor {
	return &Extractor{kind: kind, loader: loader}
}

// Extract 返回该类别的规范表
// 无匹配文件返回空表（部署环境缺某类输入是常态而非错误）；
// 下游任何失败均捕获、记日志、退化为空表，不向上传播
func (e *Extractor) Extract(filePaths []string) *model.Table {
	spec := entitySpecs[e.kind]

	path := selectFile(filePaths, spec.patterns)
	if path == "" {
		log.Printf("[extract] %s: no candidate file matched", e.kind)
		return model.NewTable()
	}

	wb, err := e.loader.Load(path, nil)
	if err != nil {
		log.Printf("[extract] %s: load %s failed: %v", e.kind, filepath.Base(path), err)
		return model.NewTable()
	}

	// 约定数据在第一张工作表
	result := tabular.Reconcile(wb.First(), spec.fields)
	if len(result.UnmatchedFields) > 0 {
		log.Printf("[extract] %s: unmatched fields in %s: %v",
			e.kind, filepath.Base(path), result.UnmatchedFields)
	}

	return result.Table
}

// selectFile 取首个文件名包含任一特征串的路径，大小写不敏感
func selectFile(filePaths, patterns []string) string {
	for _, path := range filePaths {
		name := strings.ToLower(filepath.Base(path))
		for _, pat := range patterns {
			if strings.Contains(name, strings.ToLower(pat)) {
				return path
			}
		}
	}
	return ""
}

// TableSet 三类规范表的一次性提取结果
type TableSet struct {
	Employees    *model.Table
	PaymentTerms *model.Table
	HoursClaims  *model.Table
}

// ExtractAll 对同一组候选文件提取全部三类表
func ExtractAll(loader *tabular.Loader, filePaths []string) TableSet {
	return TableSet{
		Employees:    NewExtractor(KindEmployee, loader).Extract(filePaths),
		PaymentTerms: NewExtractor(KindPaymentTerms, loader).Extract(filePaths),
		HoursClaims:  NewExtractor(KindHoursClaims, loader).Extract(filePaths),
	}
}
