package tabular

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jamesbas/supplemental-pay-agent/internal/model"
)

// Sheet 一张已规范化的工作表
type Sheet struct {
	Name  string
	Table *model.Table
}

// Workbook 一次加载的全部工作表，保留文件内顺序
type Workbook struct {
	Sheets []Sheet
}

// Table 按表名查找
func (w *Workbook) Table(name string) (*model.Table, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s.Table, true
		}
	}
	return nil, false
}

// First 第一张工作表，空工作簿返回空表
func (w *Workbook) First() *model.Table {
	if w == nil || len(w.Sheets) == 0 {
		return model.NewTable()
	}
	return w.Sheets[0].Table
}

// SheetSelector 按名或按序号选择单张工作表，nil 表示加载全部
type SheetSelector struct {
	name    string
	index   int
	byIndex bool
}

// SheetByName 按表名选择
func SheetByName(name string) *SheetSelector {
	return &SheetSelector{name: name}
}

// SheetByIndex 按序号选择（从 0 起）
func SheetByIndex(index int) *SheetSelector {
	return &SheetSelector{index: index, byIndex: true}
}

func (s *SheetSelector) key() string {
	if s == nil {
		return "*"
	}
	if s.byIndex {
		return "#" + strconv.Itoa(s.index)
	}
	return "name:" + s.name
}

// Loader 读取电子表格并产出规范化数据表
// 对每张表无条件执行：表头去首尾空白、整空行列剔除、空白单元格转空值标记
type Loader struct {
	cache *Cache
}

// NewLoader 创建加载器，缓存由外部注入便于测试替换
func NewLoader(cache *Cache) *Loader {
	return &Loader{cache: cache}
}

// Load 加载工作簿，结果按「路径+选择器」记忆化
// 文件不存在返回 ErrNotFound；解析失败的工作表记录诊断后跳过，不向上抛
func (l *Loader) Load(path string, sel *SheetSelector) (*Workbook, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, abs)
	}

	key := abs + "|" + sel.key()

	wb, cached, err := l.cache.getOrLoad(key, func() (*Workbook, error) {
		return l.read(abs, sel)
	})
	if err != nil {
		return nil, err
	}
	if cached {
		log.Printf("[tabular] cache hit: %s", key)
	}
	return wb, nil
}

// read 实际读取文件
func (l *Loader) read(path string, sel *SheetSelector) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer file.Close()

	names := file.GetSheetList()

	if sel != nil {
		if sel.byIndex {
			if sel.index < 0 || sel.index >= len(names) {
				return nil, fmt.Errorf("sheet index %d out of range in %s", sel.index, path)
			}
			names = names[sel.index : sel.index+1]
		} else {
			found := false
			for _, n := range names {
				if n == sel.name {
					names = []string{n}
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("sheet %q not found in %s", sel.name, path)
			}
		}
	}

	wb := &Workbook{Sheets: make([]Sheet, 0, len(names))}
	for _, name := range names {
		rows, err := file.GetRows(name)
		if err != nil {
			// 坏表跳过，保留其余工作表
			log.Printf("[tabular] skip unreadable sheet %q in %s: %v", name, path, err)
			continue
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Table: normalizeSheet(rows)})
	}

	log.Printf("[tabular] loaded %s: %d sheet(s)", filepath.Base(path), len(wb.Sheets))
	return wb, nil
}

// normalizeSheet 原始行数据转规范化表
func normalizeSheet(rows [][]string) *model.Table {
	if len(rows) == 0 {
		return model.NewTable()
	}

	header := rows[0]
	width := len(header)
	for _, row := range rows[1:] {
		if len(row) > width {
			width = len(row)
		}
	}

	// 表头：强制转文本并去首尾空白，缺名列给占位名，重名加序号后缀
	columns := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = fmt.Sprintf("Column%d", i+1)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		}
		seen[name] = 1
		columns[i] = name
	}

	// 单元格规范化 + 整空行剔除
	data := make([][]any, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make([]any, width)
		empty := true
		for i := 0; i < width; i++ {
			var cell string
			if i < len(raw) {
				cell = raw[i]
			}
			v := normalizeCell(cell)
			if v != nil {
				empty = false
			}
			row[i] = v
		}
		if empty {
			continue
		}
		data = append(data, row)
	}

	// 整空列剔除
	keep := make([]int, 0, width)
	for i := 0; i < width; i++ {
		allEmpty := true
		for _, row := range data {
			if row[i] != nil {
				allEmpty = false
				break
			}
		}
		if !allEmpty {
			keep = append(keep, i)
		}
	}

	table := &model.Table{
		Columns: make([]string, 0, len(keep)),
		Rows:    make([][]any, 0, len(data)),
	}
	for _, i := range keep {
		table.Columns = append(table.Columns, columns[i])
	}
	for _, row := range data {
		out := make([]any, 0, len(keep))
		for _, i := range keep {
			out = append(out, row[i])
		}
		table.Rows = append(table.Rows, out)
	}

	return table
}

// normalizeCell 空白转空值标记，数值文本转 float64
func normalizeCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	// 千分位分隔符
	numeric := strings.ReplaceAll(s, ",", "")
	if f, err := strconv.ParseFloat(numeric, 64); err == nil {
		return f
	}
	return s
}
