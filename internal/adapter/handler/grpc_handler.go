package handler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rl1809/shopping-assistant/internal/core/service"
)

// GRPCHandler serves the ShoppingAssistant service. Like the HTTP API, core
// errors are reported in the response body with success=false.
type GRPCHandler struct {
	session *service.Session
}

var _ AssistantServer = (*GRPCHandler)(nil)

func NewGRPCHandler(session *service.Session) *GRPCHandler {
	return &GRPCHandler{session: session}
}

func (h *GRPCHandler) CreateList(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	list, err := h.session.Lists.CreateList(ctx, req.GetFields()["name"].GetStringValue())
	if err != nil {
		return failure(err), nil
	}
	return success("list created", map[string]interface{}{
		"id":   list.ID,
		"name": list.Name,
	}), nil
}

func (h *GRPCHandler) AddItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	productID, ok := intField(req, "product_id")
	if !ok {
		return invalid("product_id is required"), nil
	}

	var err error
	if listID, ok := intField(req, "list_id"); ok {
		err = h.session.Lists.AddItemToList(ctx, listID, productID)
	} else {
		err = h.session.Lists.AddItem(ctx, productID)
	}
	if err != nil {
		return failure(err), nil
	}
	return success("item added", nil), nil
}

func (h *GRPCHandler) RemoveItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	listID, ok1 := intField(req, "list_id")
	productID, ok2 := intField(req, "product_id")
	if !ok1 || !ok2 {
		return invalid("list_id and product_id are required"), nil
	}

	if err := h.session.Lists.RemoveItem(ctx, listID, productID); err != nil {
		return failure(err), nil
	}
	return success("item removed", nil), nil
}

func (h *GRPCHandler) ListLists(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	lists := h.session.Lists.Lists()
	out := make([]interface{}, 0, len(lists))
	for _, l := range lists {
		items := make([]interface{}, 0, len(l.Items))
		for _, id := range l.Items {
			items = append(items, id)
		}
		out = append(out, map[string]interface{}{
			"id":    l.ID,
			"name":  l.Name,
			"items": items,
		})
	}
	return success("", map[string]interface{}{
		"lists":    out,
		"degraded": h.session.Lists.Degraded(),
	}), nil
}

func (h *GRPCHandler) ListAlerts(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	alerts := h.session.Alerts.Alerts()
	out := make([]interface{}, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, map[string]interface{}{
			"product_id":     a.ProductID,
			"threshold":      a.Threshold.String(),
			"current_price":  a.CurrentPrice.String(),
			"previous_price": a.PreviousPrice.String(),
			"trend":          string(a.Trend()),
		})
	}
	return success("", map[string]interface{}{"alerts": out}), nil
}

func (h *GRPCHandler) UpdateAlert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	productID, ok := intField(req, "product_id")
	if !ok {
		return invalid("product_id is required"), nil
	}

	alert, err := h.session.Alerts.UpdateThreshold(productID)
	if err != nil {
		return failure(err), nil
	}
	return success("alert updated", map[string]interface{}{
		"product_id": alert.ProductID,
		"threshold":  alert.Threshold.String(),
	}), nil
}

// LoggingInterceptor logs every unary call with its duration.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	logger = logger.Named("grpc")
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Info("call",
			zap.String("method", info.FullMethod),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return resp, err
	}
}

// intField reads a whole number from a Struct field. Struct numbers are
// float64, so fractional values are rejected.
func intField(s *structpb.Struct, name string) (int64, bool) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, false
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != float64(int64(n.NumberValue)) {
		return 0, false
	}
	return int64(n.NumberValue), true
}

func success(message string, data map[string]interface{}) *structpb.Struct {
	fields := map[string]interface{}{"success": true}
	if message != "" {
		fields["message"] = message
	}
	if data != nil {
		fields["data"] = data
	}
	return mustStruct(fields)
}

func failure(err error) *structpb.Struct {
	_, message := describeError(err)
	return mustStruct(map[string]interface{}{"success": false, "message": message})
}

func invalid(message string) *structpb.Struct {
	return mustStruct(map[string]interface{}{"success": false, "message": message})
}

func mustStruct(fields map[string]interface{}) *structpb.Struct {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		panic(err)
	}
	return s
}
