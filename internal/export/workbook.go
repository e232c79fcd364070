package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/report"
)

const (
	summarySheet = "Summary"
	dailySheet   = "Daily"
)

// MonthlyWorkbook writes the income summary and the per day breakdown as
// an xlsx file.
func MonthlyWorkbook(summary *report.MonthlyIncome, days []report.DailyIncome) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(dailySheet); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	// ---- summary ----
	sum := &sheet{f: f, name: summarySheet}
	sum.width("A", "A", 26)
	sum.width("B", "B", 18)
	sum.set("A1", fmt.Sprintf("Income %02d/%d", summary.Month, summary.Year))
	sum.style("A1", "B1", header)
	sum.merge("A1", "B1")

	rows := []struct {
		label string
		value any
	}{
		{"Total appointments", summary.TotalAppointments},
		{"Pending", summary.PendingAppointments},
		{"Confirmed", summary.ConfirmedAppointments},
		{"Cancelled", summary.CancelledAppointments},
		{"Completed", summary.CompletedAppointments},
		{"Total income", summary.TotalIncome},
	}
	for i, r := range rows {
		sum.set(cell("A", i+2), r.label)
		sum.set(cell("B", i+2), r.value)
	}
	if sum.err != nil {
		return nil, fmt.Errorf("summary sheet: %w", sum.err)
	}

	// ---- daily ----
	daily := &sheet{f: f, name: dailySheet}
	daily.width("A", "C", 16)
	daily.set("A1", "Day")
	daily.set("B1", "Appointments")
	daily.set("C1", "Income")
	daily.style("A1", "C1", header)

	for i, d := range days {
		row := i + 2
		daily.set(cell("A", row), d.Day)
		daily.set(cell("B", row), d.Appointments)
		daily.set(cell("C", row), d.TotalIncome)
	}
	if daily.err != nil {
		return nil, fmt.Errorf("daily sheet: %w", daily.err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// sheet keeps the first excelize error and skips every write after it.
type sheet struct {
	f    *excelize.File
	name string
	err  error
}

func (s *sheet) set(ref string, v any) {
	if s.err == nil {
		s.err = s.f.SetCellValue(s.name, ref, v)
	}
}

func (s *sheet) style(from, to string, id int) {
	if s.err == nil {
		s.err = s.f.SetCellStyle(s.name, from, to, id)
	}
}

func (s *sheet) merge(from, to string) {
	if s.err == nil {
		s.err = s.f.MergeCell(s.name, from, to)
	}
}

func (s *sheet) width(from, to string, w float64) {
	if s.err == nil {
		s.err = s.f.SetColWidth(s.name, from, to, w)
	}
}
