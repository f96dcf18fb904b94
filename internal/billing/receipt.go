package billing

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"restaupilot/internal/models"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
)

// RenderReceipt lays out a stored bill split as a one-page PDF with a QR code
// carrying the bill reference.
func RenderReceipt(bill models.SharedBill, restaurantName string, printedAt time.Time) ([]byte, error) {
	if bill.ID == "" {
		return nil, fmt.Errorf("bill has no reference")
	}

	qrPNG, err := renderQRPNG("restaupilot:bill:"+bill.ID, 400)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}

	title := strings.TrimSpace(bill.Title)
	if title == "" {
		title = "Shared Bill"
	}
	restaurantName = strings.TrimSpace(restaurantName)
	if restaurantName == "" {
		restaurantName = "RestauPilot"
	}
	payer := strings.TrimSpace(bill.PayerName)
	if payer == "" {
		payer = "Payer"
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, restaurantName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, title, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, "Split: "+bill.Policy, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	nameW := (pageW - left - right) * 0.6
	amtW := (pageW - left - right) - nameW

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(nameW, 7, "Name", "B", 0, "L", false, 0, "")
	pdf.CellFormat(amtW, 7, "Owes", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, p := range bill.Participants {
		pdf.CellFormat(nameW, 7, p.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(amtW, 7, FormatAmount(p.Amount), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(nameW, 7, payer+" (payer)", "", 0, "L", false, 0, "")
	pdf.CellFormat(amtW, 7, FormatAmount(bill.PayerShare), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(nameW, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(amtW, 8, FormatAmount(bill.Total), "T", 1, "R", false, 0, "")

	if bill.Overallocated {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Warning: shares exceed the bill total. The payer share has been set to zero.", "", "L", false)
	}

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := "bill-qr-" + bill.ID
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(qrPNG))
	size := 40.0
	pdf.Ln(4)
	pdf.ImageOptions(imageName, (pageW-size)/2, pdf.GetY(), size, size, true, opt, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, "Ref "+bill.ID, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "Printed "+printedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// FormatAmount renders a currency amount with two decimals.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", Round(v))
}

func renderQRPNG(value string, size int) ([]byte, error) {
	code, err := qr.Encode(value, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, toNRGBA(scaled)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
