package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	importSheetFilename = "musteri_toplu_import_sablonu.xlsx"
	importSheetName     = "Müşteri Listesi"
)

// ImportColumns is the header row of the customer bulk-import sheet.
var ImportColumns = []string{
	"Muayene Alanı",
	"Muayene Alt Alanı",
	"Muayene Türü",
	"Referans",
	"Muayene Tarihi",
	"Zorunlu Alan ya da Gönüllü Alan",
	"Müşteri Adı",
	"Müşteri Adresi",
	"Denetçi Adı",
	"Denetçinin Lokasyonu",
	"Rapor Onay Tarihi",
	"Raporu Onaylayan Teknik Yönetici",
}

var importSampleRows = [][]string{
	{"KALDIRMA VE İLETME EKİPMANLARI", "FORKLIFT", "PERİYODİK", "RC-2024-001", "15.01.2024", "Zorunlu Alan",
		"ABC İnşaat Ltd. Şti.", "Atatürk Cad. No:1 Kadıköy/İstanbul", "Ahmet Yılmaz", "İstanbul", "20.01.2024", "Mehmet Demir"},
	{"KALDIRMA VE İLETME EKİPMANLARI", "CARASKAL", "PERİYODİK", "RC-2024-002", "16.01.2024", "Gönüllü Alan",
		"XYZ Makine San. A.Ş.", "Sanayi Mah. 5. Sok. No:12 Nilüfer/Bursa", "Ayşe Kaya", "Bursa", "22.01.2024", "Mehmet Demir"},
}

// BuildImportSheet renders the bulk-import template as an xlsx file.
func BuildImportSheet() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", importSheetName); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, err
	}

	rows := append([][]string{ImportColumns}, importSampleRows...)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(importSheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	last, err := excelize.ColumnNumberToName(len(ImportColumns))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(importSheetName, "A1", last+"1", header); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(importSheetName, "A", last, 24); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write import sheet: %w", err)
	}
	return buf.Bytes(), nil
}
