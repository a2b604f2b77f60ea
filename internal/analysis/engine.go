package analysis

import (
	"log"

	"github.com/jamesbas/supplemental-pay-agent/internal/model"
)

// AnalyzeEmployee 单员工视图
// 员工匹配为 EmployeeId 列上的精确字符串相等（工号权威，不做模糊）。
// 命中后用其 PaymentTerms 值精确关联条款表；所需列缺失时
// 对应部分保持空容器，不报错
func AnalyzeEmployee(employeeID string, employees, terms, hours *model.Table) model.EmployeeAnalysis {
	result := model.NewEmployeeAnalysis(employeeID)

	row := findByID(employees, model.FieldEmployeeID, employeeID)
	if row >= 0 {
		result.Found = true
		result.EmployeeInfo = employees.Record(row)
	}

	if result.Found {
		if code, ok := result.EmployeeInfo.Get(model.FieldPaymentTerms); ok {
			if codeStr, ok := model.CellString(code); ok {
				result.PaymentTerms = lookupPaymentTerms(terms, codeStr)
			}
		}
	}

	result.HoursRecords = employeeHours(hours, employeeID)
	return result
}

// findByID 在指定列上精确匹配，返回首个命中行号，未中 -1
// 列缺失时退化为「无匹配」而非失败
func findByID(t *model.Table, column, target string) int {
	col := t.ColumnIndex(column)
	if col < 0 {
		return -1
	}
	for i := range t.Rows {
		if s, ok := model.CellString(t.Cell(i, col)); ok && s == target {
			return i
		}
	}
	return -1
}

// lookupPaymentTerms 按条款代码查条款表
// 键列优先取规范名 PaymentTerms，缺失时退回首列（条款表以代码为首列的约定）
func lookupPaymentTerms(terms *model.Table, code string) model.Record {
	if terms.Empty() || len(terms.Columns) == 0 {
		return model.Record{}
	}
	col := terms.ColumnIndex(model.FieldPaymentTerms)
	if col < 0 {
		col = 0
	}
	for i := range terms.Rows {
		if s, ok := model.CellString(terms.Cell(i, col)); ok && s == code {
			return terms.Record(i)
		}
	}
	return model.Record{}
}

// employeeHours 工时表中该员工的全部行，保留原列序
func employeeHours(hours *model.Table, employeeID string) []model.Record {
	records := []model.Record{}
	col := hours.ColumnIndex(model.FieldEmployeeID)
	if col < 0 {
		return records
	}
	for i := range hours.Rows {
		if s, ok := model.CellString(hours.Cell(i, col)); ok && s == employeeID {
			records = append(records, hours.Record(i))
		}
	}
	return records
}

// AnalyzeTeam 团队视图：规模、条款分布、逐月合计与趋势方向
// 离群点检测是独立调用（FindOutliers），不在此自动执行
func AnalyzeTeam(employees, terms, hours *model.Table) model.TeamAnalysis {
	result := model.NewTeamAnalysis()
	result.TeamSize = employees.NumRows()

	if col := employees.ColumnIndex(model.FieldPaymentTerms); col >= 0 {
		for i := range employees.Rows {
			if s, ok := model.CellString(employees.Cell(i, col)); ok {
				result.PaymentTermsSummary[s]++
			}
		}
	}

	monthCols := DetectMonthColumns(hours.Columns)
	for _, name := range monthCols {
		col := hours.ColumnIndex(name)
		total := 0.0
		for i := range hours.Rows {
			if v, ok := model.CellFloat(hours.Cell(i, col)); ok {
				total += v
			}
		}
		result.HoursSummary[name] = total
	}

	if len(monthCols) >= 2 {
		ordered := SortByCalendar(monthCols)
		totals := make([]float64, len(ordered))
		for i, name := range ordered {
			totals[i] = result.HoursSummary[name]
		}
		result.Trend = ClassifyTrend(totals)
		log.Printf("[analysis] team trend over %d month column(s): %s", len(ordered), result.Trend)
	}

	return result
}

// LatestMonthColumn 工时表中日历序最靠后的月份列，无则空串
func LatestMonthColumn(hours *model.Table) string {
	monthCols := DetectMonthColumns(hours.Columns)
	if len(monthCols) == 0 {
		return ""
	}
	ordered := SortByCalendar(monthCols)
	return ordered[len(ordered)-1]
}
