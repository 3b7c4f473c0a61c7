package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/config"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(filepath.Join(t.TempDir(), "financeiro.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	h := NewHandler(st, config.DefaultConfig(), zerolog.Nop())
	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	return router
}

func writeRows(t *testing.T, f *excelize.File, sheet string, rows [][]interface{}) {
	t.Helper()
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
}

func bankReportWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	writeRows(t, f, "Sheet1", [][]interface{}{
		{"Autorização", "Data de lançamento", "Data da venda", "Vencimento",
			"Bandeira/Modalidade", "Parcelas", "Valor da venda",
			"Valor líquido", "Desconto", "Tipo de lançamento"},
		{"123", "", "01/05/2024", "01/06/2024", "VISA CRÉDITO", "1", "100,00", "95,00", "5,00", "Venda"},
		{"456", "", "02/05/2024", "02/06/2024", "MASTERCARD DÉBITO", "1", "50,00", "48,00", "2,00", "Venda"},
	})
	return f
}

func cardExportWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	writeRows(t, f, "Sheet1", [][]interface{}{
		{"Coluna1", "Coluna2", "Coluna3", "Coluna4", "Coluna5", "Coluna6", "Coluna7", "Coluna8", "Coluna9"},
		{"VENDA CRÉDITO À VISTA", "01/05/2024", "VISA", "123", "", "R$ 100,00", "1", "01/06/2024", "Cliente A"},
		{"DÉBITO", "02/05/2024", "MASTERCARD", "456", "", "50,00", "1", "02/06/2024", "Cliente B"},
	})
	return f
}

// multipartUpload builds a multipart body with one workbook under field plus
// extra form values.
func multipartUpload(t *testing.T, files map[string]*excelize.File, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, f := range files {
		part, err := w.CreateFormFile(field, field+".xlsx")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			t.Fatalf("serialize workbook: %v", err)
		}
		if _, err := part.Write(buf.Bytes()); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range extra {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetStatusWithoutReference(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/status", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", rec.Code)
	}

	var resp StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.HasReference {
		t.Error("fresh store should report no reference")
	}
}

func TestSaveReferenceAndStatus(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, map[string]*excelize.File{"file": bankReportWorkbook(t)}, nil)
	rec := doRequest(t, router, http.MethodPost, "/api/reference", body, contentType)
	if rec.Code != http.StatusOK {
		t.Fatalf("save reference = %d, body %s", rec.Code, rec.Body.String())
	}

	var saved ReferenceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if saved.RowCount != 2 {
		t.Errorf("row count = %d, want 2", saved.RowCount)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/status", nil, "")
	var status StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.HasReference || status.ReferenceRowCount != 2 {
		t.Errorf("status = %+v, want stored reference with 2 rows", status)
	}
}

func TestValidateReportMissingColumns(t *testing.T) {
	router := newTestRouter(t)

	f := excelize.NewFile()
	writeRows(t, f, "Sheet1", [][]interface{}{
		{"Autorização", "Data da venda", "Bandeira/Modalidade", "Parcelas"},
		{"123", "01/05/2024", "VISA CRÉDITO", "1"},
	})

	body, contentType := multipartUpload(t, map[string]*excelize.File{"file": f}, nil)
	rec := doRequest(t, router, http.MethodPost, "/api/validate", body, contentType)
	if rec.Code != http.StatusOK {
		t.Fatalf("validate = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp ValidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Structure.IsValid {
		t.Error("report missing amount columns should be invalid")
	}
	if len(resp.Structure.MissingFields) == 0 {
		t.Error("missing fields should be listed")
	}
}

func TestReconcileAndDownload(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, map[string]*excelize.File{
		"primary":   cardExportWorkbook(t),
		"secondary": bankReportWorkbook(t),
	}, nil)
	rec := doRequest(t, router, http.MethodPost, "/api/reconcile", body, contentType)
	if rec.Code != http.StatusOK {
		t.Fatalf("reconcile = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp ReconcileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.MatchedCount != 2 || resp.DiscrepancyCount != 0 {
		t.Errorf("matched=%d discrepancies=%d, want 2/0", resp.MatchedCount, resp.DiscrepancyCount)
	}
	if resp.DownloadURL == "" {
		t.Fatal("download URL missing")
	}

	rec = doRequest(t, router, http.MethodGet, resp.DownloadURL, nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("download = %d", rec.Code)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("reopen exported workbook: %v", err)
	}
	defer wb.Close()
	rows, err := wb.GetRows("Dados")
	if err != nil {
		t.Fatalf("read Dados: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("exported rows = %d, want header + 2", len(rows))
	}

	// one-shot link
	rec = doRequest(t, router, http.MethodGet, resp.DownloadURL, nil, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second download = %d, want 404", rec.Code)
	}
}

func TestConvert(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, map[string]*excelize.File{"file": cardExportWorkbook(t)}, nil)
	rec := doRequest(t, router, http.MethodPost, "/api/convert", body, contentType)
	if rec.Code != http.StatusOK {
		t.Fatalf("convert = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp ConvertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RowCount != 2 {
		t.Errorf("row count = %d, want 2", resp.RowCount)
	}
	if resp.DownloadURL == "" {
		t.Error("download URL missing")
	}
}
