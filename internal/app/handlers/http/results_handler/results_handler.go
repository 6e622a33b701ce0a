package results_handler

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/domain/results/service"
	"github.com/IT-Nick/examdesk/internal/infra/export"
	httpError "github.com/IT-Nick/examdesk/pkg/http"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ListHandler возвращает все результаты
type ListHandler struct {
	resultService *service.ResultService
}

// NewListHandler создает новый экземпляр обработчика
func NewListHandler(resultService *service.ResultService) *ListHandler {
	return &ListHandler{resultService: resultService}
}

// ServeHTTP метод для обработки запроса
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	results, err := h.resultService.List(r.Context())
	if err != nil {
		httpError.Error(w, err)
		return
	}
	if results == nil {
		results = []model.Result{}
	}
	httpError.JSONResponse(w, http.StatusOK, results)
}

// DownloadHandler отдает результаты файлом: xlsx по умолчанию, pdf при ?format=pdf
type DownloadHandler struct {
	resultService *service.ResultService
	pdfOptions    export.PDFOptions
}

// NewDownloadHandler создает новый экземпляр обработчика
func NewDownloadHandler(resultService *service.ResultService, pdfOptions export.PDFOptions) *DownloadHandler {
	return &DownloadHandler{resultService: resultService, pdfOptions: pdfOptions}
}

// ServeHTTP метод для обработки запроса
func (h *DownloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	results, err := h.resultService.List(r.Context())
	if err != nil {
		httpError.Error(w, err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "xlsx":
		h.serveXLSX(w, results)
	case "pdf":
		h.servePDF(w, results)
	default:
		httpError.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown format %q", format))
	}
}

// servePDF рендерит документ целиком до отправки заголовков
func (h *DownloadHandler) servePDF(w http.ResponseWriter, results []model.Result) {
	var buf bytes.Buffer
	if err := export.WritePDF(results, &buf, h.pdfOptions); err != nil {
		log.Printf("Failed to build pdf export: %v", err)
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to build export: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="results.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Failed to stream pdf export: %v", err)
	}
}

// serveXLSX собирает книгу во временном файле и удаляет его после отправки
func (h *DownloadHandler) serveXLSX(w http.ResponseWriter, results []model.Result) {
	tmp, err := os.CreateTemp("", "results-*.xlsx")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to create export file")
		return
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := export.WriteXLSX(results, path); err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to build export: %v", err))
		return
	}

	f, err := os.Open(path)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to read export file")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="results.xlsx"`)
	if _, err := io.Copy(w, f); err != nil {
		log.Printf("Failed to stream xlsx export: %v", err)
	}
}
