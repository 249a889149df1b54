package export_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"image"
	"image/png"
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-studio/internal/export"
	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/render"
	"github.com/rezonia/invoice-studio/internal/totals"
)

// fakeRenderer produces a solid raster of a fixed pixel size, standing in
// for the PDF renderer so the pipeline tests stay fast and deterministic.
type fakeRenderer struct {
	width     int
	height    int
	renderErr error
	rasterErr error
}

func (r *fakeRenderer) Render(inv *model.InvoiceData, branding *model.BrandingOptions) (render.Surface, error) {
	if r.renderErr != nil {
		return nil, r.renderErr
	}
	return &fakeSurface{width: r.width, height: r.height, rasterErr: r.rasterErr}, nil
}

type fakeSurface struct {
	width     int
	height    int
	rasterErr error
}

func (s *fakeSurface) Rasterize(oversample float64) (image.Image, error) {
	if s.rasterErr != nil {
		return nil, s.rasterErr
	}
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	return img, nil
}

func (s *fakeSurface) Bytes() []byte { return []byte("%PDF-fake") }

func testInvoice() *model.InvoiceData {
	inv := model.DefaultInvoice()
	inv.InvoiceNumber = "INV-2025-0101-1234"
	inv.Items[0].Description = "Consulting"
	inv.Items[0].Quantity = dec.NewFromInt(2)
	inv.Items[0].UnitPrice = dec.NewFromInt(50)
	inv.DiscountType = model.DiscountFlat
	inv.DiscountValue = dec.NewFromInt(10)
	inv.TaxRate = dec.NewFromInt(5)
	inv.AdditionalCharges = dec.NewFromInt(20)
	totals.Apply(inv)
	return inv
}

func newPipeline(r render.Renderer) *export.Pipeline {
	return export.NewPipeline(r, zap.NewNop())
}

func TestParseFormat(t *testing.T) {
	for _, f := range export.Formats {
		got, err := export.ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := export.ParseFormat("docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", export.FormatPDF.ContentType())
	assert.Equal(t, "image/png", export.FormatPNG.ContentType())
	assert.Equal(t, "text/csv", export.FormatCSV.ContentType())
	assert.Equal(t, "application/json", export.FormatJSON.ContentType())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Invoice-INV-2025-0101-1234.pdf",
		export.Filename("INV-2025-0101-1234", export.FormatPDF))
	assert.Equal(t, "Invoice-INV-2025-0101-1234.csv",
		export.Filename("INV-2025-0101-1234", export.FormatCSV))
}

func TestExportCSV(t *testing.T) {
	p := newPipeline(&fakeRenderer{width: 100, height: 100})
	inv := testInvoice()

	file, err := p.Export(inv, model.DefaultBranding(), export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "Invoice-INV-2025-0101-1234.csv", file.Name)
	assert.Equal(t, "text/csv", file.ContentType)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 8)
	assert.Equal(t, []string{"Description", "Quantity", "Unit Price", "Amount"}, records[0])
	assert.Equal(t, []string{"Consulting", "2", "50.00", "100.00"}, records[1])
	assert.Equal(t, []string{"", "", "", ""}, records[2])
	assert.Equal(t, []string{"Subtotal", "", "", "100.00"}, records[3])
	assert.Equal(t, []string{"Discount", "", "", "10.00"}, records[4])
	assert.Equal(t, []string{"Tax (5%)", "", "", "4.50"}, records[5])
	assert.Equal(t, []string{"Additional Charges", "", "", "20.00"}, records[6])
	assert.Equal(t, []string{"Total", "", "", "114.50"}, records[7])
}

func TestExportCSV_OmitsZeroRows(t *testing.T) {
	p := newPipeline(&fakeRenderer{width: 100, height: 100})
	inv := model.DefaultInvoice()
	inv.InvoiceNumber = "INV-1"
	inv.Items[0].UnitPrice = dec.NewFromInt(100)
	totals.Apply(inv)

	file, err := p.Export(inv, model.DefaultBranding(), export.FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)

	// Header, one item, separator, subtotal, total. No discount, tax or
	// charges rows when those inputs are zero.
	require.Len(t, records, 5)
	assert.Equal(t, []string{"Subtotal", "", "", "100.00"}, records[3])
	assert.Equal(t, []string{"Total", "", "", "100.00"}, records[4])
}

func TestExportCSV_PercentageDiscountLabel(t *testing.T) {
	p := newPipeline(&fakeRenderer{width: 100, height: 100})
	inv := model.DefaultInvoice()
	inv.InvoiceNumber = "INV-1"
	inv.Items[0].UnitPrice = dec.NewFromInt(100)
	inv.DiscountType = model.DiscountPercentage
	inv.DiscountValue = dec.NewFromInt(10)
	totals.Apply(inv)

	file, err := p.Export(inv, model.DefaultBranding(), export.FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Discount (10%)", "", "", "10.00"}, records[4])
}

func TestExportCSV_QuotesCommas(t *testing.T) {
	p := newPipeline(&fakeRenderer{width: 100, height: 100})
	inv := model.DefaultInvoice()
	inv.InvoiceNumber = "INV-1"
	inv.Items[0].Description = `Design, review and "signoff"`
	inv.Items[0].UnitPrice = dec.NewFromInt(100)
	totals.Apply(inv)

	file, err := p.Export(inv, model.DefaultBranding(), export.FormatCSV)
	require.NoError(t, err)

	// The encoded field survives a round trip through a CSV reader.
	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, `Design, review and "signoff"`, records[1][0])
}

func TestExportJSON_RoundTrip(t *testing.T) {
	p := newPipeline(&fakeRenderer{width: 100, height: 100})
	inv := testInvoice()
	branding := model.DefaultBranding()
	branding.PrimaryColor = "#112233"

	file, err := p.Export(inv, branding, export.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "application/json", file.ContentType)

	gotInv, gotBranding, err := export.ReadJSON(bytes.NewReader(file.Data))
	require.NoError(t, err)

	assert.Equal(t, inv.InvoiceNumber, gotInv.InvoiceNumber)
	assert.True(t, gotInv.Total.Equal(inv.Total))
	require.Len(t, gotInv.Items, 1)
	assert.Equal(t, "Consulting", gotInv.Items[0].Description)
	assert.Equal(t, "#112233", gotBranding.PrimaryColor)
}

func TestReadJSON_MissingInvoiceData(t *testing.T) {
	_, _, err := export.ReadJSON(bytes.NewReader([]byte(`{"brandingOptions":{}}`)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no invoiceData")
}

func TestReadJSON_MissingBrandingFallsBack(t *testing.T) {
	doc := []byte(`{"invoiceData":{"invoiceNumber":"INV-9"}}`)

	inv, branding, err := export.ReadJSON(bytes.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "INV-9", inv.InvoiceNumber)
	assert.Equal(t, "#4ade80", branding.PrimaryColor)
}

func TestReadJSON_Malformed(t *testing.T) {
	_, _, err := export.ReadJSON(bytes.NewReader([]byte("{broken")))
	require.Error(t, err)
}

func TestExportXLSX(t *testing.T) {
	p := newPipeline(&fakeRenderer{width: 100, height: 100})
	inv := testInvoice()

	file, err := p.Export(inv, model.DefaultBranding(), export.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "Invoice-INV-2025-0101-1234.xlsx", file.Name)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Invoice")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 7)
	assert.Equal(t, []string{"Description", "Quantity", "Unit Price", "Amount"}, rows[0])
	assert.Equal(t, []string{"Consulting", "2", "50.00", "100.00"}, rows[1])

	last := rows[len(rows)-1]
	require.Len(t, last, 4)
	assert.Equal(t, "Total", last[0])
	assert.Equal(t, "114.50", last[3])
}

func TestExportPNG(t *testing.T) {
	p := newPipeline(&fakeRenderer{width: 640, height: 900})
	inv := testInvoice()

	file, err := p.Export(inv, model.DefaultBranding(), export.FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, "image/png", file.ContentType)

	img, err := png.Decode(bytes.NewReader(file.Data))
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 900, img.Bounds().Dy())

	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0xFFFF), g)
	assert.Equal(t, uint32(0xFFFF), b)
}

func TestExportPDF_SinglePage(t *testing.T) {
	p := newPipeline(&fakeRenderer{width: 640, height: 900})
	inv := testInvoice()

	file, err := p.Export(inv, model.DefaultBranding(), export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestExportPDF_TallSurfacePaginates(t *testing.T) {
	// A surface three pages tall must still produce a valid document.
	p := newPipeline(&fakeRenderer{width: 640, height: 2800})
	inv := testInvoice()

	file, err := p.Export(inv, model.DefaultBranding(), export.FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))

	shorter, err := newPipeline(&fakeRenderer{width: 640, height: 900}).
		Export(inv, model.DefaultBranding(), export.FormatPDF)
	require.NoError(t, err)
	assert.Greater(t, len(file.Data), len(shorter.Data))
}

func TestExport_RenderFailure(t *testing.T) {
	p := newPipeline(&fakeRenderer{renderErr: errors.New("boom")})
	inv := testInvoice()

	_, err := p.Export(inv, model.DefaultBranding(), export.FormatPDF)
	require.Error(t, err)

	var exportErr *model.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "pdf", exportErr.Format)
	assert.Equal(t, "render", exportErr.Stage)
}

func TestExport_RasterizeFailure(t *testing.T) {
	p := newPipeline(&fakeRenderer{width: 100, height: 100, rasterErr: errors.New("boom")})
	inv := testInvoice()

	_, err := p.Export(inv, model.DefaultBranding(), export.FormatPNG)
	require.Error(t, err)

	var exportErr *model.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "png", exportErr.Format)
	assert.Equal(t, "rasterize", exportErr.Stage)
}

func TestExport_UnsupportedFormat(t *testing.T) {
	p := newPipeline(&fakeRenderer{width: 100, height: 100})
	inv := testInvoice()

	_, err := p.Export(inv, model.DefaultBranding(), export.Format("docx"))
	require.Error(t, err)

	var exportErr *model.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "dispatch", exportErr.Stage)
}

func TestExport_FailureLeavesSnapshotUntouched(t *testing.T) {
	p := newPipeline(&fakeRenderer{renderErr: errors.New("boom")})
	inv := testInvoice()
	before := inv.Total

	_, err := p.Export(inv, model.DefaultBranding(), export.FormatPDF)
	require.Error(t, err)
	assert.True(t, inv.Total.Equal(before))
	require.Len(t, inv.Items, 1)
}
