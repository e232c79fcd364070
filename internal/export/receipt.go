package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ReceiptReference is the value encoded in the receipt QR code.
func ReceiptReference(ap *models.Appointment) string {
	return fmt.Sprintf("SALON-APT-%06d|%d|%s", ap.ID, ap.UserID, ap.CreatedAt.UTC().Format(time.RFC3339))
}

// Receipt renders a one page PDF for the appointment. Times are printed in
// the salon timezone.
func Receipt(ap *models.Appointment, loc *time.Location) ([]byte, error) {
	qrPNG, err := qrcode.Encode(ReceiptReference(ap), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Appointment #%d", ap.ID), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Appointment receipt")
	pdf.Ln(14)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	for _, row := range receiptRows(ap, loc) {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(45, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 8, tr(row[1]), "", 1, "L", false, 0, "")
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func receiptRows(ap *models.Appointment, loc *time.Location) [][2]string {
	rows := [][2]string{
		{"Reference", fmt.Sprintf("#%06d", ap.ID)},
		{"Status", ap.Status},
		{"Service", ap.ServiceName},
		{"Stylist", ap.StylistName},
	}
	if ap.User != nil {
		rows = append(rows, [2]string{"Customer", ap.User.Name})
	}
	if ap.Slot != nil {
		start := ap.Slot.StartTime.In(loc)
		end := ap.Slot.EndTime.In(loc)
		rows = append(rows, [2]string{"Time", start.Format("2006-01-02 15:04") + " - " + end.Format("15:04")})
	}
	if ap.Service != nil {
		rows = append(rows, [2]string{"Price", FormatPrice(ap.Service.Price)})
	}
	if ap.Notes != "" {
		rows = append(rows, [2]string{"Notes", ap.Notes})
	}
	rows = append(rows, [2]string{"Booked at", ap.CreatedAt.In(loc).Format("2006-01-02 15:04")})
	return rows
}

// FormatPrice prints a whole amount with dot thousand separators, e.g.
// 200000 -> "200.000".
func FormatPrice(v float64) string {
	n := int64(v + 0.5)
	s := fmt.Sprintf("%d", n)

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	return string(out)
}
