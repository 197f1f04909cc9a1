package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerate(t *testing.T) {
	rows := []Row{
		{
			ID:             1,
			Number:         "З-041",
			CreateDate:     "01.08.2026",
			CompletionDate: "21.08.2026",
			TotalValue:     "150 000,00",
			Type:           "Мягкая мебель",
			Description:    "Диван угловой",
			PaymentStatus:  "Внесена предоплата",
			Status:         "Взято в работу",
			Manager:        "Иван Петров",
			Executors:      []string{"Сергей Кузнецов", "Олег Смирнов"},
		},
	}

	buf, err := Generate(rows)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "З-041", got)

	got, err = f.GetCellValue(sheetName, "K2")
	require.NoError(t, err)
	assert.Equal(t, "Сергей Кузнецов, Олег Смирнов", got)

	header, err := f.GetCellValue(sheetName, "E1")
	require.NoError(t, err)
	assert.Equal(t, "Сумма", header)
}

func TestGenerateNoRows(t *testing.T) {
	_, err := Generate(nil)
	require.ErrorIs(t, err, ErrNoRows)
}
