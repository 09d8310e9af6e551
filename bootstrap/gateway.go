package bootstrap

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// GatewayHandler serves API Gateway proxy events through an http.Handler.
type GatewayHandler struct {
	handler http.Handler
}

// NewGatewayHandler wraps h for use with lambda.Start.
func NewGatewayHandler(h http.Handler) *GatewayHandler {
	return &GatewayHandler{handler: h}
}

// Handle converts the proxy request, runs it through the router and maps
// the recorded response back.
func (g *GatewayHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	httpReq, err := gatewayRequest(ctx, req)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest, Body: "invalid request"}, nil
	}
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, httpReq)
	return gatewayResponse(rec), nil
}

func gatewayRequest(ctx context.Context, req events.APIGatewayProxyRequest) (*http.Request, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, err
		}
		body = decoded
	}

	query := url.Values{}
	for key, values := range req.MultiValueQueryStringParameters {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	for key, v := range req.QueryStringParameters {
		if _, ok := query[key]; !ok {
			query.Set(key, v)
		}
	}
	target := &url.URL{Path: req.Path, RawQuery: query.Encode()}

	httpReq, err := http.NewRequestWithContext(ctx, req.HTTPMethod, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for key, values := range req.MultiValueHeaders {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	for key, v := range req.Headers {
		if httpReq.Header.Get(key) == "" {
			httpReq.Header.Set(key, v)
		}
	}
	httpReq.RemoteAddr = req.RequestContext.Identity.SourceIP
	return httpReq, nil
}

func gatewayResponse(rec *httptest.ResponseRecorder) events.APIGatewayProxyResponse {
	res := events.APIGatewayProxyResponse{
		StatusCode:        rec.Code,
		MultiValueHeaders: map[string][]string(rec.Header()),
	}
	contentType := rec.Header().Get("Content-Type")
	if isTextual(contentType) {
		res.Body = rec.Body.String()
		return res
	}
	res.Body = base64.StdEncoding.EncodeToString(rec.Body.Bytes())
	res.IsBase64Encoded = true
	return res
}

func isTextual(contentType string) bool {
	if contentType == "" {
		return true
	}
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "text/") ||
		strings.Contains(ct, "json") ||
		strings.Contains(ct, "xml")
}
