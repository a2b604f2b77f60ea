package analysis

import (
	"fmt"
	"sort"

	"github.com/jamesbas/supplemental-pay-agent/internal/model"
)

// DefaultOutlierMultiplier IQR 判定默认倍数
const DefaultOutlierMultiplier = 1.5

// FindOutliers 按 IQR 法找出指定数值列的离群行，返回升序行号
// Q1/Q3 用顺序统计量线性插值；界为 Q1-k*IQR 与 Q3+k*IQR，
// 严格越界才入选。非数值与空值既不参与分位数也不入选
func FindOutliers(t *model.Table, column string, multiplier float64) ([]int, error) {
	if multiplier <= 0 {
		multiplier = DefaultOutlierMultiplier
	}

	col := t.ColumnIndex(column)
	if col < 0 {
		return nil, fmt.Errorf("column %q not found", column)
	}

	type sample struct {
		row   int
		value float64
	}
	samples := []sample{}
	for i := range t.Rows {
		if v, ok := model.CellFloat(t.Cell(i, col)); ok {
			samples = append(samples, sample{row: i, value: v})
		}
	}
	if len(samples) == 0 {
		return []int{}, nil
	}

	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.value
	}
	sort.Float64s(values)

	q1 := quantile(values, 0.25)
	q3 := quantile(values, 0.75)
	iqr := q3 - q1

	lower := q1 - multiplier*iqr
	upper := q3 + multiplier*iqr

	outliers := []int{}
	for _, s := range samples {
		if s.value < lower || s.value > upper {
			outliers = append(outliers, s.row)
		}
	}
	return outliers, nil
}

// quantile 已排序序列的 q 分位数，顺序统计量间线性插值
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(pos)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}
