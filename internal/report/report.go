// Package report renders bookings and users as PDF documents.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"parkify/internal/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// BookingReceipt renders a single booking with a QR code of its id.
func BookingReceipt(b models.Booking) ([]byte, error) {
	qrPNG, err := qrcode.Encode(b.ID, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Parking Booking "+b.ID, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Parkify - Booking Receipt")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	rows := [][2]string{
		{"Booking ID", b.ID},
		{"Status", strings.ToUpper(string(b.Status))},
		{"Name", b.UserName},
		{"Date", b.Date},
		{"Time", b.StartTime + " - " + b.EndTime},
		{"Parking Area", b.AreaName},
		{"Slot Number", fmt.Sprintf("%d", b.SlotNumber)},
		{"Vehicle Number", valueOr(b.VehicleNumber, "-")},
		{"Total Amount", fmt.Sprintf("$%.2f", b.TotalAmount)},
		{"Booked At", b.CreatedAt.Format(time.RFC1123)},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(50, 8, row[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, imageOpts, 0, "")

	return output(pdf)
}

// BookingList renders a table of bookings.
func BookingList(bookings []models.Booking, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Parkify Bookings", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Parkify - Bookings Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s, %d bookings", generatedAt.Format("2006-01-02 15:04"), len(bookings)))
	pdf.Ln(10)

	widths := []float64{60, 40, 45, 20, 25, 28, 30, 24}
	header := []string{"ID", "User", "Area", "Slot", "Date", "Time", "Vehicle", "Status"}
	writeHeader(pdf, widths, header)

	pdf.SetFont("Arial", "", 9)
	var total float64
	for _, b := range bookings {
		cells := []string{
			b.ID,
			b.UserName,
			b.AreaName,
			fmt.Sprintf("%d", b.SlotNumber),
			b.Date,
			b.StartTime + "-" + b.EndTime,
			valueOr(b.VehicleNumber, "-"),
			string(b.Status),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, truncate(c, widths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		if b.Status != models.StatusRejected {
			total += b.TotalAmount
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Total amount (pending and approved): $%.2f", total))

	return output(pdf)
}

// UserList renders the registered users table.
func UserList(users []models.User, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Parkify Users", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Parkify - Users")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s, %d users", generatedAt.Format("2006-01-02 15:04"), len(users)))
	pdf.Ln(10)

	widths := []float64{60, 50, 60, 20}
	writeHeader(pdf, widths, []string{"ID", "Name", "Email", "Role"})

	pdf.SetFont("Arial", "", 9)
	for _, u := range users {
		for i, c := range []string{u.ID, u.Name, u.Email, string(u.Role)} {
			pdf.CellFormat(widths[i], 7, truncate(c, widths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return output(pdf)
}

func writeHeader(pdf *gofpdf.Fpdf, widths []float64, header []string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// truncate keeps a cell on one line, about one character per 1.8mm at 9pt.
func truncate(s string, width float64) string {
	max := int(width * 0.55)
	if len(s) <= max || max < 4 {
		return s
	}
	return s[:max-3] + "..."
}
