package services

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestSpreadsheetService_ImportSkipsIncompleteRows(t *testing.T) {
	f := newFixture(t)
	client := seedClient(t, f, "Acme")
	category := seedCategory(t, f, "Lights", nil)

	data := workbook(t, [][]any{
		{"Name", "Description", "ClientId", "CategoryId", "Status"},
		{"Lamp", "Desk lamp", client.ID, category.ID, "ACTIVE"},
		{"Bulb", "", "", "", ""},
		{"Shade", "", client.ID, "", ""},
	})

	result, err := f.sheets.ImportProducts(context.Background(), actor, "products.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, MsgProductRequired, result.Errors[0].Reason)

	assert.Equal(t, int64(2), f.count(t, &domain.Product{}))
	assert.Equal(t, int64(2), f.count(t, &domain.AuditLog{}, "entity = ? AND action = ?", domain.EntityProduct, domain.ActionCreate))

	var lamp domain.Product
	require.NoError(t, f.db.Where("name = ?", "Lamp").First(&lamp).Error)
	assert.Equal(t, domain.ProductStatusActive, lamp.Status)
	require.NotNil(t, lamp.CategoryID)
	assert.Equal(t, category.ID, *lamp.CategoryID)
}

func TestSpreadsheetService_ImportReportsServiceErrors(t *testing.T) {
	f := newFixture(t)

	data := workbook(t, [][]any{
		{"name", "clientId"},
		{"Ghost", 404},
	})

	result, err := f.sheets.ImportProducts(context.Background(), actor, "ghost.xlsx", data)
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, MsgClientMissing, result.Errors[0].Reason)
}

func TestSpreadsheetService_ImportKeepsUploadedFile(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	svc := NewSpreadsheetService(f.products, nil, dir, zap.NewNop())

	_, err := svc.ImportProducts(context.Background(), actor, "broken.xlsx", []byte("not a workbook"))
	requireStatus(t, err, http.StatusBadRequest, MsgImportFile)

	files, err := os.ReadDir(filepath.Join(dir, "imports"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ".xlsx", filepath.Ext(files[0].Name()))
}

func TestSpreadsheetService_Export(t *testing.T) {
	f := newFixture(t)
	client := seedClient(t, f, "Acme")
	category := seedCategory(t, f, "Lights", nil)
	seedProduct(t, f, "Lamp", client.ID, &category.ID)
	seedProduct(t, f, "Chair", client.ID, nil)

	data, err := f.sheets.ExportProducts(context.Background())
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "description", "clientId", "categoryName", "status"}, rows[0])
	assert.Equal(t, "Lamp", rows[1][1])
	assert.Equal(t, "Lights", rows[1][4])
	assert.Equal(t, "DRAFT", rows[1][5])
	assert.Equal(t, "Chair", rows[2][1])
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{"12", 12, false},
		{"12.0", 12, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-3", 0, true},
		{"1.5", 0, true},
	}
	for _, tt := range tests {
		got, err := parseID(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}
}
