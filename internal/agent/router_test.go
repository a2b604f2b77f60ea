package agent

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jamesbas/supplemental-pay-agent/internal/extract"
	"github.com/jamesbas/supplemental-pay-agent/internal/inference"
	"github.com/jamesbas/supplemental-pay-agent/internal/tabular"
)

// stubGenerator 记录调用并返回固定文本
type stubGenerator struct {
	calls   int
	prompts []string
	facts   []map[string]any
	reply   string
	err     error
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, contextFacts map[string]any) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	s.facts = append(s.facts, contextFacts)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func writeSheet(t *testing.T, path string, rows [][]any) {
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

// newTestRouter 在临时目录上搭一套完整依赖
func newTestRouter(t *testing.T, gen inference.Generator) *Router {
	t.Helper()

	dir := t.TempDir()
	writeSheet(t, filepath.Join(dir, "Employee_Data.xlsx"), [][]any{
		{"Employee ID", "Employee Name", "Payment Terms", "Hourly Rate"},
		{"E1", "Ada", "PT1", 35},
		{"E2", "Bea", "PT2", 28},
	})
	writeSheet(t, filepath.Join(dir, "Payment_Terms.xlsx"), [][]any{
		{"Payment Terms", "Overtime Rate"},
		{"PT1", 1.5},
		{"PT2", 2.0},
	})
	writeSheet(t, filepath.Join(dir, "Hours_Claims.xlsx"), [][]any{
		{"Employee ID", "Hours Sep 2024", "Hours Oct 2024"},
		{"E1", 40, 45},
		{"E2", 38, 41},
	})

	connector, err := extract.NewConnector(dir)
	if err != nil {
		t.Fatalf("connector: %v", err)
	}

	return NewRouter(&Deps{
		Gen:    gen,
		Loader: tabular.NewLoader(tabular.NewCache()),
		Files:  connector,
	})
}

func TestRoute_EmptyQuery_NoDownstreamCalls(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "unused"}
	router := newTestRouter(t, gen)

	got := router.Route(context.Background(), "   ", "hr", "")
	if got != EmptyQueryReply {
		t.Fatalf("want fixed reply got %q", got)
	}
	if gen.calls != 0 {
		t.Fatalf("inference called %d time(s) on empty query", gen.calls)
	}
}

func TestRoute_UnknownRole(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "unused"}
	router := newTestRouter(t, gen)

	got := router.Route(context.Background(), "anything", "auditor", "")
	if got != UnknownRoleReply("auditor") {
		t.Fatalf("unexpected reply %q", got)
	}
	if gen.calls != 0 {
		t.Fatalf("inference called for unknown role")
	}
}

func TestRoute_HRPolicyPath(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "policy answer"}
	router := newTestRouter(t, gen)

	got := router.Route(context.Background(), "What are the standby rules?", "HR", "")
	if got != "policy answer" {
		t.Fatalf("want policy answer got %q", got)
	}
	if gen.calls != 1 {
		t.Fatalf("want 1 call got %d", gen.calls)
	}
	if _, ok := gen.facts[0]["payment_terms"]; !ok {
		t.Fatalf("policy facts missing payment_terms: %v", gen.facts[0])
	}
}

func TestRoute_ManagerWithEmployee(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "employee answer"}
	router := newTestRouter(t, gen)

	got := router.Route(context.Background(), "Approve overtime?", "Manager", "E1")
	if got != "employee answer" {
		t.Fatalf("want employee answer got %q", got)
	}
	if !strings.Contains(gen.prompts[0], "calculate the appropriate supplemental pay") {
		t.Fatalf("wrong prompt: %q", gen.prompts[0])
	}
	if _, ok := gen.facts[0]["employee_analysis"]; !ok {
		t.Fatalf("facts missing employee_analysis: %v", gen.facts[0])
	}
}

func TestRoute_ManagerWithoutEmployee(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "team answer"}
	router := newTestRouter(t, gen)

	got := router.Route(context.Background(), "How is the team doing?", "manager", "  ")
	if got != "team answer" {
		t.Fatalf("want team answer got %q", got)
	}
	if _, ok := gen.facts[0]["team_analysis"]; !ok {
		t.Fatalf("facts missing team_analysis: %v", gen.facts[0])
	}
}

func TestRoute_PayrollAnalytics(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "analytics answer"}
	router := newTestRouter(t, gen)

	got := router.Route(context.Background(), "Any outliers this month?", "payroll", "")
	if got != "analytics answer" {
		t.Fatalf("want analytics answer got %q", got)
	}
	if gen.calls != 1 {
		t.Fatalf("want 1 call got %d", gen.calls)
	}
}

func TestRoute_InferenceFailure(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{err: &inference.Error{Kind: inference.KindTransient, Msg: "boom"}}
	router := newTestRouter(t, gen)

	got := router.Route(context.Background(), "What are the rules?", "hr", "")
	if got != inferenceFailureReply {
		t.Fatalf("want failure reply got %q", got)
	}
}

func TestRoute_MissingDataFilesDegrade(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "sparse answer"}
	connector, err := extract.NewConnector(t.TempDir())
	if err != nil {
		t.Fatalf("connector: %v", err)
	}
	router := NewRouter(&Deps{
		Gen:    gen,
		Loader: tabular.NewLoader(tabular.NewCache()),
		Files:  connector,
	})

	// 数据目录为空：退化为空表，而不是失败
	got := router.Route(context.Background(), "How is the team doing?", "manager", "")
	if got != "sparse answer" {
		t.Fatalf("want sparse answer got %q", got)
	}
	if gen.calls != 1 {
		t.Fatalf("want 1 call got %d", gen.calls)
	}
}
