package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/IT-Nick/examdesk/internal/domain/model"
)

// SheetName имя листа с результатами
const SheetName = "Results"

// DateLayout формат даты результата в выгрузках
const DateLayout = "2006-01-02 15:04:05"

// Columns фиксированный порядок колонок выгрузки
var Columns = []string{
	"full_name",
	"id_card_number",
	"phone_number",
	"birth_date",
	"address",
	"score",
	"total",
	"success",
	"date",
}

// row приводит результат к значениям колонок в порядке Columns
func row(r model.Result) []interface{} {
	return []interface{}{
		r.FullName,
		r.IDCardNumber,
		r.PhoneNumber,
		r.BirthDate,
		r.Address,
		r.Score,
		r.Total,
		yesNo(r.Success),
		r.Date.UTC().Format(DateLayout),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// WriteXLSX сохраняет результаты в xlsx-файл path: строка заголовка и по строке на результат
func WriteXLSX(results []model.Result, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	// Новая книга создается с листом Sheet1
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		values := row(r)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
