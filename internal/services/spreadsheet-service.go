package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/metrics"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Products"

var exportHeader = []string{"id", "name", "description", "clientId", "categoryName", "status"}

// SpreadsheetService moves products in and out of xlsx workbooks. Every
// imported row goes through ProductService.Create, so it is validated and
// audited like any other create.
type SpreadsheetService interface {
	ExportProducts(ctx context.Context) ([]byte, error)
	ImportProducts(ctx context.Context, userID uint, filename string, data []byte) (*dto.ImportResult, error)
}

type spreadsheetService struct {
	products  ProductService
	repo      repository.ProductRepository
	importDir string
	log       *zap.Logger
}

func NewSpreadsheetService(products ProductService, repo repository.ProductRepository, uploadDir string, log *zap.Logger) SpreadsheetService {
	return &spreadsheetService{
		products:  products,
		repo:      repo,
		importDir: filepath.Join(uploadDir, "imports"),
		log:       log,
	}
}

func (s *spreadsheetService) ExportProducts(ctx context.Context) ([]byte, error) {
	products, err := s.repo.ListForExport()
	if err != nil {
		return nil, internal(s.log, "list products for export", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, internal(s.log, "export sheet", err)
	}

	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, internal(s.log, "export header", err)
	}

	for i, p := range products {
		categoryName := ""
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		row := []any{p.ID, p.Name, p.Description, p.ClientID, categoryName, string(p.Status)}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, internal(s.log, "export cell", err)
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, internal(s.log, "export row", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, internal(s.log, "write workbook", err)
	}
	return buf.Bytes(), nil
}

func (s *spreadsheetService) ImportProducts(ctx context.Context, userID uint, filename string, data []byte) (*dto.ImportResult, error) {
	if err := s.keep(filename, data); err != nil {
		return nil, internal(s.log, "store import file", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, badRequest(MsgImportFile)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, badRequest(MsgImportFile)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, badRequest(MsgImportFile)
	}

	result := &dto.ImportResult{}
	if len(rows) == 0 {
		return result, nil
	}

	columns := headerIndex(rows[0])
	for i, row := range rows[1:] {
		line := i + 2
		if blank(row) {
			continue
		}

		input, reason := productFromRow(columns, row)
		if reason == "" {
			if _, err := s.products.Create(ctx, userID, input); err != nil {
				_, reason = StatusOf(err)
			}
		}

		if reason != "" {
			result.Skipped++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: line, Reason: reason})
			metrics.ImportRowsTotal.WithLabelValues("skipped").Inc()
			continue
		}
		result.Imported++
		metrics.ImportRowsTotal.WithLabelValues("imported").Inc()
	}

	s.log.Info("products imported",
		zap.String("file", filename),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// keep stores the uploaded workbook under the imports directory.
func (s *spreadsheetService) keep(filename string, data []byte) error {
	if err := os.MkdirAll(s.importDir, 0o755); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".xlsx"
	}
	name := filepath.Join(s.importDir, uuid.NewString()+ext)
	return os.WriteFile(name, data, 0o644)
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := columns[key]; !dup && key != "" {
			columns[key] = i
		}
	}
	return columns
}

func cellAt(columns map[string]int, row []string, name string) string {
	i, ok := columns[strings.ToLower(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func productFromRow(columns map[string]int, row []string) (dto.ProductCreateRequest, string) {
	input := dto.ProductCreateRequest{
		Name:        cellAt(columns, row, "name"),
		Description: cellAt(columns, row, "description"),
		Status:      cellAt(columns, row, "status"),
	}

	clientID, err := parseID(cellAt(columns, row, "clientId"))
	if input.Name == "" || err != nil || clientID == 0 {
		return input, MsgProductRequired
	}
	input.ClientID = clientID

	if raw := cellAt(columns, row, "categoryId"); raw != "" {
		categoryID, err := parseID(raw)
		if err != nil {
			return input, fmt.Sprintf("categoryId no vàlid: %s", raw)
		}
		input.CategoryID = &categoryID
	}
	return input, ""
}

func parseID(raw string) (uint, error) {
	if raw == "" {
		return 0, errors.New("empty id")
	}
	// spreadsheets often store ids as floats ("12.0")
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 && f == float64(uint(f)) {
		return uint(f), nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	return uint(n), err
}
