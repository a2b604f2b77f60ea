package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ErrNotFound 数据源不存在（文件或表缺失）
var ErrNotFound = errors.New("source not found")

// Table 列有序的不可变数据表
// 单元格取值为 string、float64 或 nil；nil 是空值标记，
// 与空字符串、零值严格区分。Loader 产出后各阶段只读不改。
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewTable 创建空表
func NewTable() *Table {
	return &Table{Columns: []string{}, Rows: [][]any{}}
}

// NumRows 行数
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty 是否为空表
func (t *Table) Empty() bool {
	return t == nil || (len(t.Rows) == 0 && len(t.Columns) == 0)
}

// ColumnIndex 按列名查找列序号，不存在返回 -1
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Cell 取指定行列的单元格，越界返回 nil
func (t *Table) Cell(row, col int) any {
	if t == nil || row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][col]
}

// Record 按原始列序提取一行
func (t *Table) Record(row int) Record {
	if t == nil || row < 0 || row >= len(t.Rows) {
		return Record{}
	}
	rec := make(Record, 0, len(t.Columns))
	for i, col := range t.Columns {
		rec = append(rec, Field{Name: col, Value: t.Cell(row, i)})
	}
	return rec
}

// Clone 复制表（列名与行切片深拷贝，单元格值共享）
func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable()
	}
	out := &Table{
		Columns: append([]string{}, t.Columns...),
		Rows:    make([][]any, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]any{}, row...)
	}
	return out
}

// Field 记录中的一个命名单元格
type Field struct {
	Name  string
	Value any
}

// Record 保留列序的一行数据
type Record []Field

// Get 按名取值，第二个返回值表示字段是否存在
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON 按字段顺序输出 JSON 对象，空记录输出 {}
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CellString 单元格的规范字符串形式
// 数值采用最短十进制表示，确保数值型工号与文本工号可比
func CellString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	default:
		return "", false
	}
}

// CellFloat 单元格的数值形式，非数值返回 false
func CellFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	default:
		return 0, false
	}
}
