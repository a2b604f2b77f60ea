package tabular

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jamesbas/supplemental-pay-agent/internal/model"
)

// writeWorkbook 生成测试用 xlsx
func writeWorkbook(t *testing.T, path string, sheets map[string][][]any, order []string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			f.SetSheetName("Sheet1", name)
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for r, row := range sheets[name] {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			rowCopy := row
			if err := f.SetSheetRow(name, cell, &rowCopy); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func TestLoad_NormalizesSheet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "claims.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Claims": {
			{"  Employee ID  ", "Hours Sep 2024", "Empty"},
			{"E1", 40, nil},
			{nil, nil, nil},
			{"E2", "1,200", nil},
		},
	}, []string{"Claims"})

	wb, err := NewLoader(NewCache()).Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	table, ok := wb.Table("Claims")
	if !ok {
		t.Fatalf("sheet missing")
	}

	// 表头去空白、整空行列剔除
	if len(table.Columns) != 2 || table.Columns[0] != "Employee ID" || table.Columns[1] != "Hours Sep 2024" {
		t.Fatalf("unexpected columns: %v", table.Columns)
	}
	if table.NumRows() != 2 {
		t.Fatalf("want 2 rows got %d", table.NumRows())
	}

	// 数值文本转数值（含千分位）
	if v, _ := model.CellFloat(table.Cell(0, 1)); v != 40 {
		t.Fatalf("want 40 got %v", table.Cell(0, 1))
	}
	if v, _ := model.CellFloat(table.Cell(1, 1)); v != 1200 {
		t.Fatalf("want 1200 got %v", table.Cell(1, 1))
	}
}

func TestLoad_BlankCellsBecomeNull(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "emp.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Employees": {
			{"EmployeeId", "EmployeeName"},
			{"E1", "   "},
			{"E2", "Bea"},
		},
	}, []string{"Employees"})

	wb, err := NewLoader(NewCache()).Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	table := wb.First()
	if table.Cell(0, 1) != nil {
		t.Fatalf("blank cell not null: %v", table.Cell(0, 1))
	}
	if table.Cell(1, 1) != "Bea" {
		t.Fatalf("value cell lost: %v", table.Cell(1, 1))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(NewCache()).Load(filepath.Join(t.TempDir(), "absent.xlsx"), nil)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestLoad_Memoizes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "emp.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Employees": {
			{"EmployeeId"},
			{"E1"},
		},
	}, []string{"Employees"})

	cache := NewCache()
	loader := NewLoader(cache)

	first, err := loader.Load(path, nil)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := loader.Load(path, nil)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	if first != second {
		t.Fatalf("second load bypassed cache")
	}
	if cache.Len() != 1 {
		t.Fatalf("want 1 cache entry got %d", cache.Len())
	}
}

func TestLoad_SheetSelector(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "multi.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"First":  {{"A"}, {"1"}},
		"Second": {{"B"}, {"2"}},
	}, []string{"First", "Second"})

	loader := NewLoader(NewCache())

	byName, err := loader.Load(path, SheetByName("Second"))
	if err != nil {
		t.Fatalf("load by name: %v", err)
	}
	if len(byName.Sheets) != 1 || byName.Sheets[0].Name != "Second" {
		t.Fatalf("unexpected sheets: %+v", byName.Sheets)
	}

	byIndex, err := loader.Load(path, SheetByIndex(1))
	if err != nil {
		t.Fatalf("load by index: %v", err)
	}
	if len(byIndex.Sheets) != 1 || byIndex.Sheets[0].Name != "Second" {
		t.Fatalf("unexpected sheets: %+v", byIndex.Sheets)
	}

	if _, err := loader.Load(path, SheetByName("Nope")); err == nil {
		t.Fatalf("missing selected sheet must fail")
	}
}
