package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"code-assistant/internal/usecase"
)

// Handle serves API Gateway proxy events with the same routes as Router.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := h.correlationID(headerValue(event.Headers, correlationHeader))
	ctx = usecase.WithCorrelationID(ctx, id)

	method := strings.ToUpper(event.HTTPMethod)
	path := strings.TrimRight(event.Path, "/")

	if method == http.MethodOptions {
		return h.lambdaResponse(id, http.StatusNoContent, nil), nil
	}
	if path == "/health" && method == http.MethodGet {
		return h.lambdaResponse(id, http.StatusOK, healthResponse{Status: "ok"}), nil
	}

	rt, ok := h.routes[path]
	if !ok {
		return h.lambdaResponse(id, http.StatusNotFound, errorResponse{Error: "not found"}), nil
	}
	if method != http.MethodPost {
		return h.lambdaResponse(id, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"}), nil
	}

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return h.lambdaResponse(id, http.StatusBadRequest, errorResponse{Error: "invalid request body"}), nil
		}
		body = decoded
	}
	if len(body) > maxBodyBytes {
		return h.lambdaResponse(id, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"}), nil
	}

	status, out := h.dispatch(ctx, rt, body)
	return h.lambdaResponse(id, status, out), nil
}

func (h *Handler) lambdaResponse(correlationID string, status int, v any) events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
			"Access-Control-Allow-Headers": "*",
			correlationHeader:              correlationID,
		},
	}
	if v == nil {
		return resp
	}
	buf, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("failed to encode response", "err", err)
		resp.StatusCode = http.StatusInternalServerError
		buf = []byte(`{"error":"internal error"}`)
	}
	resp.Body = string(buf)
	return resp
}

// headerValue looks up a header regardless of how API Gateway cased it.
func headerValue(headers map[string]string, key string) string {
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
