package certalert

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/certalert-go/pkg/certalert/models"
	"github.com/ukaji3/certalert-go/pkg/certalert/parser"
	"github.com/xuri/excelize/v2"
)

// Load reads the data table of one sheet of an Excel file. An empty sheet
// name selects the first sheet in workbook order.
func Load(path, sheet string) (*models.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, filepath.Base(path), err)
	}
	defer f.Close()

	sheetName, err := resolveSheet(f, sheet)
	if err != nil {
		return nil, err
	}

	table, err := parser.ExtractTable(f, sheetName)
	if err != nil {
		return nil, NewExtractionError(sheetName, err)
	}
	table.BookName = filepath.Base(path)
	return table, nil
}

func resolveSheet(f *excelize.File, sheet string) (string, error) {
	sheetList := f.GetSheetList()
	if sheet == "" {
		if len(sheetList) == 0 {
			return "", ErrSheetNotFound
		}
		return sheetList[0], nil
	}
	for _, name := range sheetList {
		if name == sheet {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
}
