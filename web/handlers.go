package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/ka2n/ecdemo/catalog"
	"github.com/ka2n/ecdemo/log"
	"github.com/ka2n/ecdemo/store"
	"github.com/ka2n/ecdemo/version"
	"github.com/morikuni/failure/v2"
)

// maxBodyBytes bounds every request body
const maxBodyBytes = 1 << 20

type statusResponse struct {
	Connected        bool   `json:"connected"`
	Version          string `json:"version"`
	MCPVersion       string `json:"mcpVersion"`
	FigmaIntegration string `json:"figmaIntegration"`
	Timestamp        int64  `json:"timestamp"`
}

type tokensResponse struct {
	Success bool                 `json:"success"`
	Tokens  store.DesignTokenSet `json:"tokens"`
}

type syncResponse struct {
	Success bool `json:"success"`
	Synced  bool `json:"synced"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (a *App) statusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Connected:        true,
		Version:          version.Version,
		MCPVersion:       version.MCPVersion,
		FigmaIntegration: "active",
		Timestamp:        a.now().UnixMilli(),
	})
}

func (a *App) getDesignTokensHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.DesignTokens())
}

func (a *App) postDesignTokensHandler(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tokens, err := a.store.MergeDesignTokens(body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Info("design_tokens_updated", "request_id", RequestIDFromContext(r.Context()))
	writeJSON(w, http.StatusOK, tokensResponse{Success: true, Tokens: tokens})
}

func (a *App) syncCartHandler(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.store.ReplaceCart(body["cart"]); err != nil {
		writeError(w, r, err)
		return
	}
	items, _ := body["cart"].([]any)
	log.Info("cart_synced",
		"items", len(items),
		"request_id", RequestIDFromContext(r.Context()),
	)
	writeJSON(w, http.StatusOK, syncResponse{Success: true, Synced: true})
}

func (a *App) appendLogHandler(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	event := "unknown"
	switch v := body["event"].(type) {
	case nil:
	case string:
		if v != "" {
			event = v
		}
	default:
		writeError(w, r, failure.New(store.InvalidInput,
			failure.Message("event must be a string"),
		))
		return
	}
	data := body["data"]
	if data == nil {
		data = map[string]any{}
	}

	rec := a.store.AppendLog(event, data)
	log.Info("event_logged", "id", rec.ID, "event", rec.Event)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (a *App) getLogsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("limit")
	if q == "" {
		writeJSON(w, http.StatusOK, a.store.AllLogs())
		return
	}
	limit, err := strconv.Atoi(q)
	if err != nil {
		writeError(w, r, failure.New(store.InvalidInput,
			failure.Message("limit must be an integer"),
			failure.Context{"limit": q},
		))
		return
	}
	writeJSON(w, http.StatusOK, a.store.Logs(limit))
}

func (a *App) getCartHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Cart())
}

func (a *App) getProductsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Products())
}

// decodeBody reads a single JSON value from the request. An empty body decodes
// as an empty object; trailing data after the value is rejected.
func decodeBody(w http.ResponseWriter, r *http.Request) (any, error) {
	var v any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, invalidBody(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return nil, invalidBody(err)
	}
	return v, nil
}

func invalidBody(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return failure.New(BodyTooLarge,
			failure.Message("Request body too large"),
			failure.Context{"limit": strconv.FormatInt(mbe.Limit, 10)},
		)
	}
	return failure.New(store.InvalidInput,
		failure.Message("Invalid JSON body"),
		failure.Context{"error": err.Error()},
	)
}

// decodeObject is decodeBody restricted to JSON objects
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	v, err := decodeBody(w, r)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, failure.New(store.InvalidInput,
			failure.Message("Request body must be a JSON object"),
		)
	}
	return obj, nil
}
