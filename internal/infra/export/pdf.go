package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/IT-Nick/examdesk/internal/domain/model"
)

// PDFOptions настройки печатной выгрузки.
// FontDir указывает каталог с DejaVuSans.ttf и DejaVuSans-Bold.ttf для кириллицы;
// без него используется встроенный Helvetica, а узбекские апострофы заменяются на '.
type PDFOptions struct {
	FontDir string
}

// apostrophes заменяет узбекские oʻ/gʻ и тутук-белгиси на ASCII-апостроф:
// в cp1252 для встроенного Helvetica этих символов нет
var apostrophes = strings.NewReplacer("ʻ", "'", "ʼ", "'", "‘", "'", "’", "'")

// ширина колонок в мм для альбомного A4, в порядке Columns
var columnWidths = []float64{45, 30, 32, 24, 50, 14, 14, 16, 40}

// WritePDF печатает результаты таблицей в w
func WritePDF(results []model.Result, w io.Writer, opts PDFOptions) error {
	pdf := gofpdf.New("L", "mm", "A4", "")

	family := "Helvetica"
	cp1252 := pdf.UnicodeTranslatorFromDescriptor("")
	tr := func(s string) string { return cp1252(apostrophes.Replace(s)) }
	if opts.FontDir != "" {
		family = "DejaVu"
		pdf.AddUTF8Font(family, "", filepath.Join(opts.FontDir, "DejaVuSans.ttf"))
		pdf.AddUTF8Font(family, "B", filepath.Join(opts.FontDir, "DejaVuSans-Bold.ttf"))
		tr = func(s string) string { return s }
	}

	pdf.AddPage()
	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(0, 10, tr("Test natijalari"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(family, "B", 9)
	for i, c := range Columns {
		pdf.CellFormat(columnWidths[i], 7, c, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	for _, r := range results {
		cells := []string{
			r.FullName,
			r.IDCardNumber,
			r.PhoneNumber,
			r.BirthDate,
			r.Address,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Total),
			yesNo(r.Success),
			r.Date.UTC().Format(DateLayout),
		}
		for i, v := range cells {
			pdf.CellFormat(columnWidths[i], 7, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
