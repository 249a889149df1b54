package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gen2brain/go-fitz"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/money"
)

const (
	surfaceWidthMM  = 210.0
	surfaceMinHtMM  = 297.0
	marginMM        = 15.0
	itemRowHtMM     = 8.0
	totalsRowHtMM   = 7.0
	pxToMM          = 25.4 / 96.0
	baseDPI         = 72.0
)

// PDFRenderer draws the invoice onto a single tall vector page. The page
// width follows A4; the height grows with the content so the surface can
// later be tiled across fixed-size pages.
type PDFRenderer struct {
	logger *zap.Logger
}

// NewPDFRenderer creates the default renderer.
func NewPDFRenderer(logger *zap.Logger) *PDFRenderer {
	return &PDFRenderer{logger: logger}
}

// Render draws the invoice and returns the finished surface.
func (r *PDFRenderer) Render(inv *model.InvoiceData, branding *model.BrandingOptions) (Surface, error) {
	height := estimateHeight(inv, branding)

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: surfaceWidthMM, Ht: height},
	})
	doc.SetMargins(marginMM, marginMM, marginMM)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")
	font := coreFontFor(branding.FontFamily)
	primary := parseHexColor(branding.PrimaryColor)
	secondary := parseHexColor(branding.SecondaryColor)
	symbol := tr(model.CurrencySymbol(inv.Currency))

	r.drawHeader(doc, tr, inv, branding, font, primary)
	r.drawLogo(doc, branding)
	r.drawTitle(doc, tr, inv, branding, font, secondary)
	r.drawParties(doc, tr, inv, branding, font)
	r.drawItems(doc, tr, inv, branding, font, primary, symbol)
	r.drawTotals(doc, tr, inv, branding, font, secondary, symbol)
	r.drawFreeText(doc, tr, inv, branding, font)
	r.drawFooter(doc, tr, inv, branding, font, secondary, height)
	r.drawWatermark(doc, tr, inv, font, height)

	if doc.Err() {
		return nil, fmt.Errorf("failed to draw invoice: %w", doc.Error())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write surface: %w", err)
	}

	r.logger.Debug("Rendered invoice surface",
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Float64("height_mm", height),
		zap.Int("size_bytes", buf.Len()))

	return &pdfSurface{data: buf.Bytes()}, nil
}

func (r *PDFRenderer) drawHeader(doc *gofpdf.Fpdf, tr func(string) string, inv *model.InvoiceData, b *model.BrandingOptions, font string, primary rgb) {
	if !inv.ShowHeader || inv.HeaderText == "" {
		return
	}
	doc.SetFillColor(primary.r, primary.g, primary.b)
	doc.Rect(0, 0, surfaceWidthMM, 14, "F")
	doc.SetY(4)
	doc.SetFont(font, "B", float64(b.HeaderFontSize))
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(0, 6, tr(inv.HeaderText), "", 1, "C", false, 0, "")
	doc.SetY(20)
}

func (r *PDFRenderer) drawLogo(doc *gofpdf.Fpdf, b *model.BrandingOptions) {
	if b.Logo == "" {
		return
	}
	data, imgType, err := decodeLogo(b.Logo)
	if err != nil {
		// A broken logo payload degrades to a logo-free render.
		r.logger.Warn("Skipping logo", zap.Error(err))
		return
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		r.logger.Warn("Skipping undecodable logo", zap.Error(err))
		return
	}

	opt := gofpdf.ImageOptions{ImageType: imgType}
	info := doc.RegisterImageOptionsReader("branding-logo", opt, bytes.NewReader(data))
	if info == nil {
		return
	}

	w := float64(b.LogoWidth) * pxToMM
	h := w * info.Height() / info.Width()
	doc.ImageOptions("branding-logo", marginMM, doc.GetY(), w, 0, false, opt, 0, "")
	doc.SetY(doc.GetY() + h + 4)
}

func (r *PDFRenderer) drawTitle(doc *gofpdf.Fpdf, tr func(string) string, inv *model.InvoiceData, b *model.BrandingOptions, font string, secondary rgb) {
	doc.SetFont(font, "B", float64(b.HeaderFontSize)+8)
	doc.SetTextColor(secondary.r, secondary.g, secondary.b)
	doc.CellFormat(0, 12, "INVOICE", "", 1, "L", false, 0, "")

	doc.SetFont(font, "", float64(b.BodyFontSize))
	doc.SetTextColor(60, 60, 60)
	doc.CellFormat(0, 6, tr(fmt.Sprintf("Invoice No: %s", inv.InvoiceNumber)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr(fmt.Sprintf("Date: %s", inv.Date)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr(fmt.Sprintf("Due Date: %s", inv.DueDate)), "", 1, "L", false, 0, "")
	doc.Ln(4)
}

func (r *PDFRenderer) drawParties(doc *gofpdf.Fpdf, tr func(string) string, inv *model.InvoiceData, b *model.BrandingOptions, font string) {
	colWidth := (surfaceWidthMM - 2*marginMM) / 2
	top := doc.GetY()

	drawParty := func(x float64, label string, p model.Party) float64 {
		doc.SetXY(x, top)
		doc.SetFont(font, "B", float64(b.BodyFontSize))
		doc.SetTextColor(30, 30, 30)
		doc.CellFormat(colWidth, 6, label, "", 2, "L", false, 0, "")
		doc.SetFont(font, "", float64(b.BodyFontSize)-1)
		doc.SetTextColor(60, 60, 60)
		for _, line := range partyLines(p) {
			doc.SetX(x)
			doc.CellFormat(colWidth, 5, tr(line), "", 2, "L", false, 0, "")
		}
		return doc.GetY()
	}

	left := drawParty(marginMM, "From", inv.Sender)
	right := drawParty(marginMM+colWidth, "Bill To", inv.Client)
	if right > left {
		left = right
	}
	doc.SetY(left + 6)
}

func (r *PDFRenderer) drawItems(doc *gofpdf.Fpdf, tr func(string) string, inv *model.InvoiceData, b *model.BrandingOptions, font string, primary rgb, symbol string) {
	widths := []float64{90, 25, 30, 35}
	headers := []string{"Description", "Quantity", "Unit Price", "Amount"}
	aligns := []string{"L", "R", "R", "R"}

	doc.SetFont(font, "B", float64(b.ItemFontSize))
	doc.SetFillColor(primary.r, primary.g, primary.b)
	doc.SetTextColor(255, 255, 255)
	for i, h := range headers {
		last := i == len(headers)-1
		ln := 0
		if last {
			ln = 1
		}
		doc.CellFormat(widths[i], itemRowHtMM, h, "", ln, aligns[i], true, 0, "")
	}

	doc.SetFont(font, "", float64(b.ItemFontSize))
	doc.SetTextColor(40, 40, 40)
	doc.SetDrawColor(220, 220, 220)
	for _, it := range inv.Items {
		cells := []string{
			tr(it.Description),
			it.Quantity.String(),
			symbol + money.Format(it.UnitPrice),
			symbol + money.Format(it.Amount),
		}
		for i, c := range cells {
			last := i == len(cells)-1
			ln := 0
			if last {
				ln = 1
			}
			doc.CellFormat(widths[i], itemRowHtMM, c, "B", ln, aligns[i], false, 0, "")
		}
	}
	doc.Ln(4)
}

func (r *PDFRenderer) drawTotals(doc *gofpdf.Fpdf, tr func(string) string, inv *model.InvoiceData, b *model.BrandingOptions, font string, secondary rgb, symbol string) {
	labelX := surfaceWidthMM - marginMM - 75
	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		doc.SetX(labelX)
		doc.SetFont(font, style, float64(b.BodyFontSize))
		doc.CellFormat(40, totalsRowHtMM, tr(label), "", 0, "R", false, 0, "")
		doc.CellFormat(35, totalsRowHtMM, value, "", 1, "R", false, 0, "")
	}

	doc.SetTextColor(40, 40, 40)
	row("Subtotal", symbol+money.Format(inv.Subtotal), false)
	if money.IsPositive(inv.DiscountValue) {
		label := "Discount"
		if inv.DiscountType == model.DiscountPercentage {
			label = fmt.Sprintf("Discount (%s%%)", inv.DiscountValue.String())
		}
		row(label, "-"+symbol+money.Format(inv.DiscountAmount), false)
	}
	if money.IsPositive(inv.TaxRate) {
		row(fmt.Sprintf("Tax (%s%%)", inv.TaxRate.String()), symbol+money.Format(inv.TaxAmount), false)
	}
	if money.IsPositive(inv.AdditionalCharges) {
		row("Additional Charges", symbol+money.Format(inv.AdditionalCharges), false)
	}

	doc.SetTextColor(secondary.r, secondary.g, secondary.b)
	row("Total", symbol+money.Format(inv.Total), true)
	doc.Ln(4)
}

func (r *PDFRenderer) drawFreeText(doc *gofpdf.Fpdf, tr func(string) string, inv *model.InvoiceData, b *model.BrandingOptions, font string) {
	section := func(label, text string) {
		if text == "" {
			return
		}
		doc.SetFont(font, "B", float64(b.BodyFontSize))
		doc.SetTextColor(30, 30, 30)
		doc.CellFormat(0, 6, label, "", 1, "L", false, 0, "")
		doc.SetFont(font, "", float64(b.BodyFontSize)-1)
		doc.SetTextColor(60, 60, 60)
		doc.MultiCell(0, 5, tr(text), "", "L", false)
		doc.Ln(3)
	}

	section("Notes", inv.Notes)
	section("Terms & Conditions", inv.Terms)
	section("Bank Details", inv.BankDetails)
}

func (r *PDFRenderer) drawFooter(doc *gofpdf.Fpdf, tr func(string) string, inv *model.InvoiceData, b *model.BrandingOptions, font string, secondary rgb, height float64) {
	if !inv.ShowFooter || inv.FooterText == "" {
		return
	}
	doc.SetY(height - marginMM - 8)
	doc.SetFont(font, "I", float64(b.FooterFontSize))
	doc.SetTextColor(secondary.r, secondary.g, secondary.b)
	doc.CellFormat(0, 6, tr(inv.FooterText), "", 1, "C", false, 0, "")
}

func (r *PDFRenderer) drawWatermark(doc *gofpdf.Fpdf, tr func(string) string, inv *model.InvoiceData, font string, height float64) {
	if inv.Watermark == "" {
		return
	}
	doc.SetAlpha(inv.WatermarkOpacity, "Normal")
	doc.SetFont(font, "B", 64)
	doc.SetTextColor(128, 128, 128)

	cx, cy := surfaceWidthMM/2, height/2
	doc.TransformBegin()
	doc.TransformRotate(45, cx, cy)
	width := doc.GetStringWidth(tr(inv.Watermark))
	doc.Text(cx-width/2, cy, tr(inv.Watermark))
	doc.TransformEnd()
	doc.SetAlpha(1.0, "Normal")
}

// estimateHeight sizes the surface page so all content fits on one page,
// never smaller than A4.
func estimateHeight(inv *model.InvoiceData, b *model.BrandingOptions) float64 {
	h := 2 * marginMM
	if inv.ShowHeader && inv.HeaderText != "" {
		h += 20
	}
	if b.Logo != "" {
		h += float64(b.LogoWidth)*pxToMM + 8
	}
	h += 36 // title block
	senderLines := len(partyLines(inv.Sender))
	clientLines := len(partyLines(inv.Client))
	if clientLines > senderLines {
		senderLines = clientLines
	}
	h += 12 + float64(senderLines)*5
	h += itemRowHtMM*float64(len(inv.Items)+1) + 4
	h += totalsRowHtMM*5 + 4
	for _, text := range []string{inv.Notes, inv.Terms, inv.BankDetails} {
		if text != "" {
			h += 9 + float64(1+countLines(text))*5
		}
	}
	if inv.ShowFooter && inv.FooterText != "" {
		h += 14
	}
	if h < surfaceMinHtMM {
		h = surfaceMinHtMM
	}
	return h
}

func partyLines(p model.Party) []string {
	var lines []string
	add := func(s string) {
		if s != "" {
			lines = append(lines, s)
		}
	}
	add(p.Name)
	for _, l := range splitLines(p.Address) {
		add(l)
	}
	add(p.Email)
	add(p.Phone)
	if p.TaxID != "" {
		add("Tax ID: " + p.TaxID)
	}
	return lines
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

func countLines(s string) int {
	return len(splitLines(s))
}

// pdfSurface is the finished vector surface.
type pdfSurface struct {
	data []byte
}

// Bytes returns the raw PDF bytes of the surface.
func (s *pdfSurface) Bytes() []byte {
	return s.data
}

// Rasterize converts the surface to a raster image via mupdf.
func (s *pdfSurface) Rasterize(oversample float64) (image.Image, error) {
	doc, err := fitz.NewFromMemory(s.data)
	if err != nil {
		return nil, fmt.Errorf("failed to open surface: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("surface has no pages")
	}

	img, err := doc.ImageDPI(0, baseDPI*oversample)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize surface: %w", err)
	}
	return img, nil
}
