package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
	"github.com/rl1809/shopping-assistant/internal/core/service"
)

const requestIDHeader = "X-Request-ID"

type HTTPHandler struct {
	session *service.Session
	logger  *zap.Logger
}

type APIResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Degraded bool        `json:"degraded,omitempty"`
}

type CreateListHTTPRequest struct {
	Name string `json:"name"`
}

type AddItemHTTPRequest struct {
	ProductID int64  `json:"product_id"`
	ListID    *int64 `json:"list_id,omitempty"`
}

type LocationHTTPRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func NewHTTPHandler(session *service.Session, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{session: session, logger: logger.Named("http")}
}

// Routes returns the API mux wrapped with request-id and access logging.
func (h *HTTPHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/lists", h.ListLists)
	mux.HandleFunc("POST /api/lists", h.CreateList)
	mux.HandleFunc("POST /api/lists/items", h.AddItem)
	mux.HandleFunc("DELETE /api/lists/{listID}/items/{productID}", h.RemoveItem)
	mux.HandleFunc("GET /api/alerts", h.ListAlerts)
	mux.HandleFunc("POST /api/alerts/{productID}/refresh", h.UpdateAlert)
	mux.HandleFunc("PUT /api/location", h.SetLocation)
	mux.HandleFunc("GET /api/stores", h.SearchStores)
	return h.withRequestLog(mux)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.session.Catalog.Products()
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: views})
}

func (h *HTTPHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	h.writeLists(w, http.StatusOK, "")
}

func (h *HTTPHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req CreateListHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Message: "invalid request body"})
		return
	}

	if _, err := h.session.Lists.CreateList(r.Context(), req.Name); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeLists(w, http.StatusCreated, "list created")
}

func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Message: "invalid request body"})
		return
	}

	var err error
	if req.ListID != nil {
		err = h.session.Lists.AddItemToList(r.Context(), *req.ListID, req.ProductID)
	} else {
		err = h.session.Lists.AddItem(r.Context(), req.ProductID)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeLists(w, http.StatusOK, "item added")
}

func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	listID, err1 := strconv.ParseInt(r.PathValue("listID"), 10, 64)
	productID, err2 := strconv.ParseInt(r.PathValue("productID"), 10, 64)
	if err1 != nil || err2 != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Message: "invalid list or product id"})
		return
	}

	if err := h.session.Lists.RemoveItem(r.Context(), listID, productID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeLists(w, http.StatusOK, "item removed")
}

func (h *HTTPHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	views := newAlertViews(h.session.Catalog, h.session.Alerts.Alerts())
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: views})
}

func (h *HTTPHandler) UpdateAlert(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("productID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Message: "invalid product id"})
		return
	}

	alert, err := h.session.Alerts.UpdateThreshold(productID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var data interface{} = alert.Threshold.StringFixed(2)
	if p, ok := h.session.Catalog.Product(productID); ok {
		data = newAlertView(p, alert)
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "alert updated", Data: data})
}

func (h *HTTPHandler) SetLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Lat == nil || req.Lng == nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Message: "lat and lng are required"})
		return
	}

	if err := h.session.Stores.SetLocation(domain.Coordinate{Lat: *req.Lat, Lng: *req.Lng}); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "location updated"})
}

// SearchStores takes the radius in kilometres, as entered by users.
func (h *HTTPHandler) SearchStores(w http.ResponseWriter, r *http.Request) {
	radiusKM, err := strconv.ParseFloat(r.URL.Query().Get("radius_km"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Message: "radius_km must be a number"})
		return
	}

	stores, err := h.session.Stores.SearchNearby(r.Context(), radiusKM*1000)
	if err != nil {
		status, message := describeError(err)
		writeJSON(w, status, APIResponse{Message: message, Data: []storeView{}})
		return
	}

	message := ""
	if len(stores) == 0 {
		message = "no stores found in the specified radius"
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: message, Data: newStoreViews(stores)})
}

func (h *HTTPHandler) writeLists(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{
		Success:  true,
		Message:  message,
		Data:     newListViews(h.session.Catalog, h.session.Lists.Lists()),
		Degraded: h.session.Lists.Degraded(),
	})
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	status, message := describeError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, APIResponse{Message: message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *HTTPHandler) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		h.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("latency", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

