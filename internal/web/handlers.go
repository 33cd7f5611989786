package web

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/KieuOanh0106/sales-dashboard/internal/core"
	"github.com/KieuOanh0106/sales-dashboard/internal/database"
	"github.com/KieuOanh0106/sales-dashboard/internal/logging"
	"github.com/jackc/pgx/v5/pgtype"
)

// handleDashboard serves the static dashboard page with the D3 charts.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(staticFiles, "static/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "dashboard unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// handleHealth reports database connectivity.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleSalesData returns every order item flattened to the fourteen
// source-schema columns. Money fields are serialized as floats at this
// boundary; the exact decimals live only in the database and importer.
func (s *Server) handleSalesData(w http.ResponseWriter, r *http.Request) {
	rows, err := s.service.SalesData(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load sales data")
		return
	}

	payload := make([]map[string]any, len(rows))
	for i, row := range rows {
		payload[i] = salesRecord(row)
	}

	logging.FromContext(r.Context()).Info("sales data served", "records", len(payload))
	writeJSON(w, payload)
}

// salesRecord flattens one joined row under the original export's
// column names. The Vietnamese keys are the API contract with the
// charting frontend, which feeds them straight into its axis labels.
func salesRecord(r database.SalesDataRow) map[string]any {
	return map[string]any{
		"Mã đơn hàng":                r.OrderCode,
		"Thời gian tạo đơn":          r.CreatedAt.In(core.SaigonTime).Format("2006-01-02 15:04:05"),
		"Mã khách hàng":              r.CustomerCode,
		"Tên khách hàng":             r.CustomerName,
		"Mã PKKH":                    r.SegmentCode,
		"Mô tả Phân Khúc Khách hàng": r.SegmentDesc,
		"Mã nhóm hàng":               r.GroupCode,
		"Tên nhóm hàng":              r.GroupName,
		"Mã mặt hàng":                r.ProductCode,
		"Tên mặt hàng":               r.ProductName,
		"Giá Nhập":                   numericToFloat(r.CostPrice),
		"SL":                         r.Quantity,
		"Đơn giá":                    numericToFloat(r.UnitPrice),
		"Thành tiền":                 numericToFloat(r.LineTotal),
	}
}

// numericToFloat converts a money column for JSON output.
// NULL cost prices come out as 0, matching the original API.
func numericToFloat(n pgtype.Numeric) float64 {
	v, err := n.Float64Value()
	if err != nil || !v.Valid {
		return 0
	}
	return v.Float64
}

// statusResponse is the body of GET /api/test.
type statusResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Data    statusCounts `json:"data"`
}

type statusCounts struct {
	TotalOrders        int64 `json:"total_orders"`
	TotalCustomers     int64 `json:"total_customers"`
	TotalProducts      int64 `json:"total_products"`
	TotalSegments      int64 `json:"total_segments"`
	TotalProductGroups int64 `json:"total_product_groups"`
	TotalOrderItems    int64 `json:"total_order_items"`
}

// handleStatus returns a connectivity check with entity counts.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	counts, err := s.service.Counts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count entities")
		return
	}

	writeJSON(w, statusResponse{
		Status:  "success",
		Message: "API hoạt động bình thường!",
		Data: statusCounts{
			TotalOrders:        counts.Orders,
			TotalCustomers:     counts.Customers,
			TotalProducts:      counts.Products,
			TotalSegments:      counts.Segments,
			TotalProductGroups: counts.ProductGroups,
			TotalOrderItems:    counts.OrderItems,
		},
	})
}

// handleImport ingests an uploaded CSV/TSV sales export.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	start := time.Now()
	result, err := s.service.ImportFile(r.Context(), file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "import failed")
		return
	}

	logging.FromContext(r.Context()).Info("file imported",
		"file", header.Filename,
		"rows", result.Rows,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	writeJSON(w, map[string]any{
		"importId": result.RunID,
		"rows":     result.Rows,
		"inserted": result.Inserted,
		"message":  fmt.Sprintf("Imported %d order items", result.Rows),
	})
}

// handleReset purges all sales data. Destructive and unprompted, as
// with the CLI counterpart: confirmation is the caller's problem.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}

	writeJSON(w, map[string]string{"status": "success", "message": "all sales data removed"})
}
