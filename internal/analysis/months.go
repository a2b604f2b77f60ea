package analysis

import (
	"sort"
	"strings"

	"github.com/jamesbas/supplemental-pay-agent/internal/model"
)

// 十二个标准英文月份缩写，按日历序
var monthAbbrevs = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// DetectMonthColumns 找出列名含月份缩写的列，保留原列序
func DetectMonthColumns(columns []string) []string {
	out := []string{}
	for _, col := range columns {
		if monthPosition(col) >= 0 {
			out = append(out, col)
		}
	}
	return out
}

// monthPosition 列名中首个命中的月份缩写的日历位置（0-11），无则 -1
func monthPosition(column string) int {
	lowered := strings.ToLower(column)
	best := -1
	bestIdx := len(lowered) + 1
	for pos, abbr := range monthAbbrevs {
		if i := strings.Index(lowered, abbr); i >= 0 && i < bestIdx {
			best = pos
			bestIdx = i
		}
	}
	return best
}

// SortByCalendar 月份列按缩写的日历位置排序
// 稳定排序：同月缩写按首次出现顺序保持不变
func SortByCalendar(columns []string) []string {
	out := append([]string{}, columns...)
	sort.SliceStable(out, func(i, j int) bool {
		return monthPosition(out[i]) < monthPosition(out[j])
	})
	return out
}

// ClassifyTrend 趋势判定，输入为按日历序排列的各月合计
// 全部相邻对严格递增 => increasing；全部严格递减 => decreasing；
// 任一处回折即整体判 none。不足两个月不激活判定
func ClassifyTrend(totals []float64) string {
	if len(totals) < 2 {
		return model.TrendNone
	}

	increasing := true
	decreasing := true
	for i := 1; i < len(totals); i++ {
		if totals[i] <= totals[i-1] {
			increasing = false
		}
		if totals[i] >= totals[i-1] {
			decreasing = false
		}
	}

	switch {
	case increasing:
		return model.TrendIncreasing
	case decreasing:
		return model.TrendDecreasing
	default:
		return model.TrendNone
	}
}
