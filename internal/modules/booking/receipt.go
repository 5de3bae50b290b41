package booking

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"tradebridge/internal/domain"
)

// BuildReceiptPDF renders a rental receipt for the booking. The booking must
// be loaded with its product and party associations.
func BuildReceiptPDF(b *domain.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Rental Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RENTAL RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt No   : TB-%d", b.ID),
		fmt.Sprintf("Issued       : %s", time.Now().Format("2006-01-02 15:04")),
		fmt.Sprintf("Item         : %s", safe(productName(b), "-")),
		fmt.Sprintf("Borrower     : %s", safe(userName(b.Borrower), "-")),
		fmt.Sprintf("Lender       : %s", safe(userName(b.Lender), "-")),
		fmt.Sprintf("Rental period: %s - %s", b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02")),
		fmt.Sprintf("Status       : %s", b.Status),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: $%.2f", b.TotalAmount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This receipt covers one rental agreement between the parties above.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func productName(b *domain.Booking) string {
	if b.Product == nil {
		return ""
	}
	return b.Product.Name
}

func userName(u *domain.User) string {
	if u == nil {
		return ""
	}
	return u.Name
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
