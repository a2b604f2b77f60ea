package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jamesbas/supplemental-pay-agent/internal/tabular"
)

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+1)
		rowCopy := row
		if err := f.SetSheetRow("Sheet1", cell, &rowCopy); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestExtract_SelectsByFilenamePattern(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	empPath := filepath.Join(dir, "EmpID_Legacy_Country_Payments_Hourly_2024.xlsx")
	writeWorkbook(t, empPath, [][]any{
		{"Employee ID", "Employee Name", "Payment Terms", "Hourly Rate"},
		{"E1", "Ada", "PT1", 35},
	})
	writeWorkbook(t, filepath.Join(dir, "Notes.xlsx"), [][]any{
		{"Misc"},
		{"noise"},
	})

	connector, err := NewConnector(dir)
	if err != nil {
		t.Fatalf("connector: %v", err)
	}
	paths, err := connector.ListWorkbooks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	loader := tabular.NewLoader(tabular.NewCache())
	table := NewExtractor(KindEmployee, loader).Extract(paths)

	// 表头经规范化改名
	want := []string{"EmployeeId", "EmployeeName", "PaymentTerms", "HourlyRate"}
	if len(table.Columns) != len(want) {
		t.Fatalf("columns %v", table.Columns)
	}
	for i, col := range want {
		if table.Columns[i] != col {
			t.Fatalf("column %d want %s got %s", i, col, table.Columns[i])
		}
	}
	if table.NumRows() != 1 {
		t.Fatalf("want 1 row got %d", table.NumRows())
	}
}

func TestExtract_CaseInsensitiveMatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "payment_terms_v2.xlsx"), [][]any{
		{"Payment Terms", "Overtime Rate"},
		{"PT1", 1.5},
	})

	paths := []string{filepath.Join(dir, "payment_terms_v2.xlsx")}
	loader := tabular.NewLoader(tabular.NewCache())
	table := NewExtractor(KindPaymentTerms, loader).Extract(paths)

	if table.NumRows() != 1 {
		t.Fatalf("want 1 row got %d", table.NumRows())
	}
	if table.Columns[0] != "PaymentTerms" {
		t.Fatalf("columns %v", table.Columns)
	}
}

func TestExtract_NoMatchYieldsEmptyTable(t *testing.T) {
	t.Parallel()

	loader := tabular.NewLoader(tabular.NewCache())
	table := NewExtractor(KindHoursClaims, loader).Extract([]string{"/data/Notes.xlsx"})

	if table == nil {
		t.Fatalf("want empty table got nil")
	}
	if table.NumRows() != 0 || len(table.Columns) != 0 {
		t.Fatalf("want empty table got %+v", table)
	}
}

func TestExtract_LoadFailureYieldsEmptyTable(t *testing.T) {
	t.Parallel()

	// 匹配成功但文件缺失：退化为空表而不是报错
	path := filepath.Join(t.TempDir(), "Hours_Claims.xlsx")
	loader := tabular.NewLoader(tabular.NewCache())
	table := NewExtractor(KindHoursClaims, loader).Extract([]string{path})

	if table.NumRows() != 0 || len(table.Columns) != 0 {
		t.Fatalf("want empty table got %+v", table)
	}
}

func TestExtract_CorruptFileYieldsEmptyTable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Employee_Data.xlsx")
	if err := os.WriteFile(path, []byte("not a workbook"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loader := tabular.NewLoader(tabular.NewCache())
	table := NewExtractor(KindEmployee, loader).Extract([]string{path})

	if table.NumRows() != 0 || len(table.Columns) != 0 {
		t.Fatalf("want empty table got %+v", table)
	}
}

func TestExtractAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "Employee_Data.xlsx"), [][]any{
		{"Employee ID"},
		{"E1"},
	})
	writeWorkbook(t, filepath.Join(dir, "Hours_Claims.xlsx"), [][]any{
		{"Employee ID", "Hours Sep 2024"},
		{"E1", 40},
	})

	connector, err := NewConnector(dir)
	if err != nil {
		t.Fatalf("connector: %v", err)
	}
	paths, err := connector.ListWorkbooks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	set := ExtractAll(tabular.NewLoader(tabular.NewCache()), paths)
	if set.Employees.NumRows() != 1 {
		t.Fatalf("employees %+v", set.Employees)
	}
	if set.HoursClaims.NumRows() != 1 {
		t.Fatalf("hours %+v", set.HoursClaims)
	}
	// 条款文件缺失：空表
	if set.PaymentTerms.NumRows() != 0 {
		t.Fatalf("payment terms should be empty: %+v", set.PaymentTerms)
	}
}

func TestConnector_ListWorkbooks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.xls", "ignore.csv", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.xlsx"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	connector, err := NewConnector(dir)
	if err != nil {
		t.Fatalf("connector: %v", err)
	}
	paths, err := connector.ListWorkbooks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("want 2 paths got %v", paths)
	}
	if filepath.Base(paths[0]) != "a.xls" || filepath.Base(paths[1]) != "b.xlsx" {
		t.Fatalf("unexpected order: %v", paths)
	}
}

func TestNewConnector_CreatesMissingDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "fresh")
	connector, err := NewConnector(dir)
	if err != nil {
		t.Fatalf("connector: %v", err)
	}
	if _, err := os.Stat(connector.DataDir()); err != nil {
		t.Fatalf("directory not created: %v", err)
	}
}
