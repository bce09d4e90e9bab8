package dblob

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/memodb-io/assetd/internal/modules/model"
	"go.uber.org/zap"
)

// remoteStore answers the legacy surface by calling the real asset service
// through its HTTP boundary.
type remoteStore struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

// NewRemote builds a shim store backed by the asset service at baseURL.
func NewRemote(baseURL, token string, log *zap.Logger) Store {
	return &remoteStore{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data,omitempty"`
	Msg  string          `json:"msg"`
}

func (s *remoteStore) call(ctx context.Context, method, path string, reqBody any, out any) error {
	var body io.Reader
	if reqBody != nil {
		raw, err := sonic.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.token)
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Error("asset service request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := sonic.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("unmarshal response data: %w", err)
	}
	return nil
}

type addAssetBody struct {
	AssetType string          `json:"assetType"`
	Label     string          `json:"label"`
	Content   model.AssetData `json:"content"`
	Origin    json.RawMessage `json:"origin"`
	Metadata  json.RawMessage `json:"metadata"`
	ContextID string          `json:"contextId"`
	ScopeID   string          `json:"scopeId"`
}

func (s *remoteStore) AddDBImageAsset(ctx context.Context, scopeID model.ScopeID, image ImageInput, params AddImageParams) (uuid.UUID, error) {
	meta, err := sonic.Marshal(params.Metadata)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal image metadata: %w", err)
	}

	var out struct {
		ID uuid.UUID `json:"id"`
	}
	err = s.call(ctx, http.MethodPost, "/api/v1/asset", addAssetBody{
		AssetType: string(model.AssetTypeImage),
		Label:     params.Label,
		Content: model.AssetData{
			MimeType: image.MimeType,
			Base64:   base64.StdEncoding.EncodeToString(image.Data),
		},
		Origin:    params.Origin,
		Metadata:  meta,
		ContextID: string(model.ContextGlobal),
		ScopeID:   string(scopeID),
	}, &out)
	if err != nil {
		return uuid.Nil, err
	}
	return out.ID, nil
}

func (s *remoteStore) GetDBAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var a model.Asset
	if err := s.call(ctx, http.MethodGet, "/api/v1/asset/"+id.String(), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *remoteStore) GetImageAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	a, err := s.GetDBAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.AssetType != model.AssetTypeImage {
		return nil, fmt.Errorf("asset %s is not an image", id)
	}
	return a, nil
}

func (s *remoteStore) GetImageAssetAsBlobURL(ctx context.Context, id uuid.UUID) (string, error) {
	a, err := s.GetImageAsset(ctx, id)
	if err != nil {
		return "", err
	}
	return materializeBlobURL(a)
}

type gcBody struct {
	ContextID string      `json:"contextId"`
	ScopeID   string      `json:"scopeId"`
	AssetType *string     `json:"assetType,omitempty"`
	KeepIDs   []uuid.UUID `json:"keepIds"`
}

func (s *remoteStore) GCDBImageAssets(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID, keepIDs []uuid.UUID) (int64, error) {
	img := model.AssetTypeImage
	return s.GCDBAssetsByScope(ctx, contextID, scopeID, &img, keepIDs)
}

func (s *remoteStore) GCDBAssetsByScope(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID, assetType *model.AssetType, keepIDs []uuid.UUID) (int64, error) {
	body := gcBody{
		ContextID: string(contextID),
		ScopeID:   string(scopeID),
		KeepIDs:   keepIDs,
	}
	if assetType != nil {
		t := string(*assetType)
		body.AssetType = &t
	}

	var out struct {
		Count int64 `json:"count"`
	}
	if err := s.call(ctx, http.MethodPost, "/api/v1/asset/gc", body, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (s *remoteStore) DeleteDBAsset(ctx context.Context, id uuid.UUID) error {
	return s.call(ctx, http.MethodDelete, "/api/v1/asset/"+id.String(), nil, nil)
}

func (s *remoteStore) TransferDBAssetContextScope(ctx context.Context, id uuid.UUID, contextID model.ContextID, scopeID model.ScopeID) error {
	return s.call(ctx, http.MethodPut, "/api/v1/asset/"+url.PathEscape(id.String())+"/scope", map[string]string{
		"contextId": string(contextID),
		"scopeId":   string(scopeID),
	}, nil)
}
