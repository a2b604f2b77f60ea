package model

// 趋势方向
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendNone       = "none"
)

// EmployeeAnalysis 单员工分析结果
// 未命中时 Found=false，其余字段为空容器而非 null，调用方始终拿到完整结构
type EmployeeAnalysis struct {
	EmployeeID   string   `json:"employee_id"`
	Found        bool     `json:"found"`
	EmployeeInfo Record   `json:"employee_info"`
	PaymentTerms Record   `json:"payment_terms"`
	HoursRecords []Record `json:"hours_records"`
	Error        string   `json:"error,omitempty"`
}

// NewEmployeeAnalysis 创建带空容器的结果
func NewEmployeeAnalysis(employeeID string) EmployeeAnalysis {
	return EmployeeAnalysis{
		EmployeeID:   employeeID,
		EmployeeInfo: Record{},
		PaymentTerms: Record{},
		HoursRecords: []Record{},
	}
}

// TeamAnalysis 团队分析结果
// OutlierIndices 由独立的离群点检测调用填充，AnalyzeTeam 本身不计算
type TeamAnalysis struct {
	TeamSize            int                `json:"team_size"`
	PaymentTermsSummary map[string]int     `json:"payment_terms_summary"`
	HoursSummary        map[string]float64 `json:"hours_summary"`
	Trend               string             `json:"trend"`
	OutlierIndices      []int              `json:"outlier_indices"`
	Error               string             `json:"error,omitempty"`
}

// NewTeamAnalysis 创建带空容器的结果
func NewTeamAnalysis() TeamAnalysis {
	return TeamAnalysis{
		PaymentTermsSummary: map[string]int{},
		HoursSummary:        map[string]float64{},
		Trend:               TrendNone,
		OutlierIndices:      []int{},
	}
}
