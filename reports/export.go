package reports

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"Obra", "Total de Horas", "Horas Aprovadas", "Horas Pendentes", "Funcionários"}

// WriteCSV renders the summary table as CSV, one row per obra.
func WriteCSV(w io.Writer, summaries []ProjectSummary) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(exportHeader); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, s := range summaries {
		row := []string{
			s.Project,
			strconv.Itoa(s.TotalHours),
			strconv.Itoa(s.ApprovedHours),
			strconv.Itoa(s.PendingHours),
			strconv.Itoa(s.EmployeeCount),
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush csv")
}

// WriteXLSX renders the summary table as a single-sheet workbook.
func WriteXLSX(w io.Writer, summaries []ProjectSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Relatório"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errors.Wrap(err, "header cell name")
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return errors.Wrap(err, "write header cell")
		}
	}

	for i, s := range summaries {
		values := []interface{}{s.Project, s.TotalHours, s.ApprovedHours, s.PendingHours, s.EmployeeCount}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return errors.Wrap(err, "data cell name")
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return errors.Wrap(err, "write data cell")
			}
		}
	}

	return errors.Wrap(f.Write(w), "write workbook")
}
