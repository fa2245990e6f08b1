package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"video2broll/internal/app/model"
)

// ToExcel writes one row per media record with its pipeline outputs.
func ToExcel(records []model.MediaRecord, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Media")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Owner"
	headerRow.AddCell().Value = "File Name"
	headerRow.AddCell().Value = "Transcription Job"
	headerRow.AddCell().Value = "Transcript"
	headerRow.AddCell().Value = "Keywords"
	headerRow.AddCell().Value = "Clips"
	headerRow.AddCell().Value = "Package Link"
	headerRow.AddCell().Value = "Created At"

	for _, record := range records {
		row := sheet.AddRow()
		row.AddCell().Value = record.ID
		row.AddCell().Value = record.Owner
		row.AddCell().Value = record.FileName
		row.AddCell().Value = record.TranscriptionJobID
		row.AddCell().Value = record.Transcript
		row.AddCell().Value = model.JoinKeywords(record.Keywords)
		row.AddCell().Value = fmt.Sprint(len(record.CandidateClips))
		row.AddCell().Value = record.PackageLink
		row.AddCell().Value = record.CreatedAt.Format(time.RFC3339)
	}

	return file.Save(outputFilePath)
}
