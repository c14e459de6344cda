// Package invoice renders the two-page printable bill: a summary page and a
// calendar of daily deliveries.
package invoice

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/mamadbah2/milkbill/internal/billing"
	"github.com/mamadbah2/milkbill/internal/config"
)

type rgb struct{ r, g, b int }

var (
	colorPrimary   = rgb{26, 188, 156}
	colorSecondary = rgb{44, 62, 80}
	colorAccent    = rgb{231, 76, 60}
	colorSuccess   = rgb{39, 174, 96}
	colorDark      = rgb{52, 73, 94}
	colorMedium    = rgb{149, 165, 166}
	colorLight     = rgb{236, 240, 241}
	colorWhite     = rgb{255, 255, 255}
	colorPaper     = rgb{248, 249, 250}
	colorFiller    = rgb{250, 250, 250}
	colorDelivered = rgb{232, 245, 233}
)

var weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

const (
	gridLeft       = 20.0
	gridTop        = 60.0
	weekdayHeight  = 15.0
	cellHeight     = 30.0
	fontFamily     = "Helvetica"
	pageNumberHint = "{nb}"
)

// Generator renders invoices for one business.
type Generator struct {
	businessName string
	tagline      string
	productName  string
	countryCode  string
	compress     bool
}

// NewGenerator builds a generator that prints the business identity in cfg.
func NewGenerator(cfg config.BillingConfig, countryCode string) *Generator {
	return &Generator{
		businessName: cfg.BusinessName,
		tagline:      cfg.Tagline,
		productName:  cfg.ProductName,
		countryCode:  countryCode,
		compress:     true,
	}
}

// Render writes the PDF for bill to w.
func (g *Generator) Render(w io.Writer, bill billing.Bill) error {
	if len(bill.Entries) == 0 {
		return billing.ErrNoDeliveries
	}

	entries := append([]billing.Entry(nil), bill.Entries...)
	billing.SortEntries(entries)
	totals := billing.Calculate(entries, bill.PricePerLiter)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(g.compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages(pageNumberHint)
	d := &drawer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		d.textColor(colorMedium)
		pdf.SetFont(fontFamily, "", 8)
		_, h := pdf.GetPageSize()
		d.centered(h-10, fmt.Sprintf("Page %d of %s", pdf.PageNo(), pageNumberHint))
	})

	g.summaryPage(d, bill, totals)
	g.schedulePage(d, bill.Month, entries)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}
	return nil
}

func (g *Generator) summaryPage(d *drawer, bill billing.Bill, totals billing.Totals) {
	pdf := d.pdf
	pdf.AddPage()
	width, height := pdf.GetPageSize()

	d.fillColor(colorPrimary)
	pdf.Rect(0, 0, width, 45, "F")
	d.textColor(colorWhite)
	pdf.SetFont(fontFamily, "B", 22)
	d.centered(17, g.businessName)
	pdf.SetFont(fontFamily, "", 12)
	d.centered(28, g.tagline)
	pdf.SetFont(fontFamily, "B", 18)
	d.centered(38, "Invoice")

	y := 70.0
	d.fillColor(colorLight)
	d.drawColor(colorMedium)
	pdf.SetLineWidth(0.5)
	pdf.Rect(20, y, 85, 40, "FD")
	d.textColor(colorDark)
	pdf.SetFont(fontFamily, "B", 14)
	d.text(25, y+10, "Bill To:")
	pdf.SetFont(fontFamily, "", 12)
	d.text(25, y+20, customerOrDefault(bill.CustomerName))
	d.text(25, y+28, fmt.Sprintf("Phone: +%s%s", g.countryCode, bill.MobileNumber))

	d.fillColor(colorPaper)
	pdf.Rect(110, y, 85, 40, "FD")
	d.textColor(colorDark)
	pdf.SetFont(fontFamily, "B", 14)
	d.text(115, y+10, "Summary:")
	pdf.SetFont(fontFamily, "", 12)
	d.text(115, y+20, "Period: "+bill.Month.Label())
	d.text(115, y+28, fmt.Sprintf("Total Quantity: %.1f L", totals.Quantity))
	d.text(115, y+36, fmt.Sprintf("Rate: Rs. %.2f/L", totals.PricePerLiter))

	y += 60
	d.fillColor(colorPrimary)
	d.drawColor(colorPrimary)
	pdf.Rect(20, y, 175, 12, "FD")
	d.textColor(colorWhite)
	pdf.SetFont(fontFamily, "B", 11)
	d.text(25, y+8, "Description")
	d.centeredAt(80, y+8, "Days")
	d.centeredAt(110, y+8, "Quantity")
	d.centeredAt(140, y+8, "Rate")
	d.centeredAt(175, y+8, "Amount")

	y += 12
	d.fillColor(colorWhite)
	d.drawColor(colorLight)
	pdf.Rect(20, y, 175, 15, "FD")
	d.textColor(colorDark)
	pdf.SetFont(fontFamily, "", 11)
	d.text(25, y+10, g.productName)
	d.centeredAt(80, y+10, fmt.Sprint(totals.Days))
	d.centeredAt(110, y+10, fmt.Sprintf("%.1f L", totals.Quantity))
	d.centeredAt(140, y+10, fmt.Sprintf("Rs. %.2f", totals.PricePerLiter))
	d.centeredAt(175, y+10, fmt.Sprintf("Rs. %.2f", totals.Amount))

	y += 25
	const boxX, boxW, boxH = 65.0, 80.0, 25.0
	d.fillColor(colorAccent)
	d.drawColor(colorAccent)
	pdf.Rect(boxX, y, boxW, boxH, "FD")
	d.textColor(colorWhite)
	pdf.SetFont(fontFamily, "B", 12)
	d.centeredAt(boxX+boxW/2, y+9, "TOTAL AMOUNT")
	pdf.SetFont(fontFamily, "B", 18)
	d.centeredAt(boxX+boxW/2, y+19, fmt.Sprintf("Rs. %.2f", totals.Amount))

	y = height - 40
	d.textColor(colorMedium)
	pdf.SetFont(fontFamily, "", 10)
	d.centered(y, fmt.Sprintf("Thank you for choosing %s!", g.businessName))
	d.centered(y+8, "For any queries, please contact us.")
}

func (g *Generator) schedulePage(d *drawer, month billing.Month, entries []billing.Entry) {
	pdf := d.pdf
	pdf.AddPage()
	width, _ := pdf.GetPageSize()

	d.fillColor(colorSecondary)
	pdf.Rect(0, 0, width, 40, "F")
	d.textColor(colorWhite)
	pdf.SetFont(fontFamily, "B", 20)
	d.centered(20, "Daily Delivery Schedule")
	pdf.SetFont(fontFamily, "", 12)
	d.centered(30, month.Label())

	cellWidth := (width - 2*gridLeft) / 7
	for i, name := range weekdays {
		switch i {
		case 0:
			d.fillColor(colorAccent)
		case 6:
			d.fillColor(colorSuccess)
		default:
			d.fillColor(colorPrimary)
		}
		x := gridLeft + float64(i)*cellWidth
		pdf.Rect(x, gridTop, cellWidth, weekdayHeight, "F")
		d.textColor(colorWhite)
		pdf.SetFont(fontFamily, "B", 10)
		d.centeredAt(x+cellWidth/2, gridTop+10, name)
	}

	top := gridTop + weekdayHeight
	pdf.SetLineWidth(0.2)
	d.drawColor(colorMedium)
	d.fillColor(colorFiller)
	for col := 0; col < month.FirstWeekday(); col++ {
		pdf.Rect(gridLeft+float64(col)*cellWidth, top, cellWidth, cellHeight, "FD")
	}

	cells, rows := Layout(month, entries)
	for _, c := range cells {
		x := gridLeft + float64(c.Col)*cellWidth
		y := top + float64(c.Row)*cellHeight

		if c.Delivered() {
			d.fillColor(colorDelivered)
		} else {
			d.fillColor(colorWhite)
		}
		d.drawColor(colorMedium)
		pdf.Rect(x, y, cellWidth, cellHeight, "FD")

		d.textColor(colorDark)
		pdf.SetFont(fontFamily, "B", 12)
		d.text(x+3, y+8, fmt.Sprint(c.Day))

		if c.Delivered() {
			d.textColor(colorSuccess)
			pdf.SetFont(fontFamily, "B", 11)
			d.centeredAt(x+cellWidth/2, y+20, fmt.Sprintf("%.1f L", c.Quantity))
			d.fillColor(colorSuccess)
			pdf.Circle(x+cellWidth-8, y+8, 2, "F")
		} else {
			d.textColor(colorMedium)
			pdf.SetFont(fontFamily, "", 8)
			d.centeredAt(x+cellWidth/2, y+20, "No Delivery")
		}
	}

	legendY := top + float64(rows)*cellHeight + 10
	d.fillColor(colorDelivered)
	pdf.Rect(20, legendY, 8, 8, "F")
	d.textColor(colorDark)
	pdf.SetFont(fontFamily, "", 10)
	d.text(32, legendY+6, "Delivery Day")
	d.fillColor(colorWhite)
	d.drawColor(colorLight)
	pdf.Rect(20, legendY+13, 8, 8, "FD")
	d.text(32, legendY+19, "No Delivery")
}

// drawer wraps the few gofpdf calls the layout needs.
type drawer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (d *drawer) fillColor(c rgb) { d.pdf.SetFillColor(c.r, c.g, c.b) }
func (d *drawer) drawColor(c rgb) { d.pdf.SetDrawColor(c.r, c.g, c.b) }
func (d *drawer) textColor(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }

func (d *drawer) text(x, y float64, s string) {
	d.pdf.Text(x, y, d.tr(s))
}

// centeredAt draws s horizontally centered on x with its baseline at y.
func (d *drawer) centeredAt(x, y float64, s string) {
	s = d.tr(s)
	d.pdf.Text(x-d.pdf.GetStringWidth(s)/2, y, s)
}

func (d *drawer) centered(y float64, s string) {
	width, _ := d.pdf.GetPageSize()
	d.centeredAt(width/2, y, s)
}
