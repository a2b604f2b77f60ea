package model

// 规范字段名：下游分析按名依赖，与源表头文本无关
const (
	FieldEmployeeID   = "EmployeeId"
	FieldEmployeeName = "EmployeeName"
	FieldPaymentTerms = "PaymentTerms"
	FieldHourlyRate   = "HourlyRate"
)

// EmployeeFields 员工表必备字段
var EmployeeFields = []string{
	FieldEmployeeID,
	FieldEmployeeName,
	FieldPaymentTerms,
	FieldHourlyRate,
}

// PaymentTermsFields 付款条款表必备字段（按条款代码为键，其余列任意）
var PaymentTermsFields = []string{
	FieldPaymentTerms,
}

// HoursClaimsFields 工时申报表必备字段（其余为每月一列，如 "Hours Sep 2024"）
var HoursClaimsFields = []string{
	FieldEmployeeID,
}
