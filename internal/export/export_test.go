package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/report"
)

func TestReceipt(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	start := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)

	ap := &models.Appointment{
		ID:          12,
		UserID:      3,
		Status:      "confirmed",
		ServiceName: "Cut",
		StylistName: "Lan",
		Notes:       "short on the sides",
		User:        &models.User{Name: "Minh"},
		Slot:        &models.Slot{StartTime: start, EndTime: start.Add(time.Hour)},
		Service:     &models.Service{Price: 200000},
		CreatedAt:   start.Add(-24 * time.Hour),
	}

	pdf, err := Receipt(ap, loc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	rows := receiptRows(ap, loc)
	assert.Contains(t, rows, [2]string{"Time", "2025-03-10 09:00 - 10:00"})
	assert.Contains(t, rows, [2]string{"Price", "200.000"})
	assert.Contains(t, ReceiptReference(ap), "SALON-APT-000012|3|")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "0", FormatPrice(0))
	assert.Equal(t, "950", FormatPrice(950))
	assert.Equal(t, "200.000", FormatPrice(200000))
	assert.Equal(t, "1.350.001", FormatPrice(1350000.5))
}

func TestMonthlyWorkbook(t *testing.T) {
	summary := &report.MonthlyIncome{Month: 3, Year: 2025, TotalAppointments: 4, CompletedAppointments: 2, TotalIncome: 400000}
	days := []report.DailyIncome{{Day: 1, TotalIncome: 200000, Appointments: 2}, {Day: 2}}

	data, err := MonthlyWorkbook(summary, days)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, dailySheet}, f.GetSheetList())

	title, err := f.GetCellValue(summarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Income 03/2025", title)

	income, err := f.GetCellValue(summarySheet, "B7")
	require.NoError(t, err)
	assert.Equal(t, "400000", income)

	day, err := f.GetCellValue(dailySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", day)
}

func TestSheetStopsAtFirstError(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	missing := &sheet{f: f, name: "Missing"}
	missing.set("A1", "x")
	require.Error(t, missing.err)
	first := missing.err
	missing.merge("A1", "B1")
	assert.Equal(t, first, missing.err)

	ok := &sheet{f: f, name: "Sheet1"}
	ok.set("A0", "x")
	require.Error(t, ok.err)
	ok.set("A1", "skipped")
	v, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Empty(t, v)
}
