package service

import (
	"encoding/json"
	"testing"

	"github.com/memodb-io/assetd/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestDecodeOrigin(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
		check   func(*testing.T, *model.UserOrigin, *model.GeneratedOrigin)
	}{
		{
			name: "user origin",
			raw:  `{"ot":"user","source":"upload","fileName":"a.png"}`,
			check: func(t *testing.T, u *model.UserOrigin, g *model.GeneratedOrigin) {
				assert.NotNil(t, u)
				assert.Nil(t, g)
				assert.Equal(t, "upload", u.Source)
			},
		},
		{
			name: "generated origin",
			raw:  `{"ot":"generated","source":"dalle","generatorName":"dall-e-3","prompt":"a cat"}`,
			check: func(t *testing.T, u *model.UserOrigin, g *model.GeneratedOrigin) {
				assert.Nil(t, u)
				assert.NotNil(t, g)
				assert.Equal(t, "dall-e-3", g.GeneratorName)
			},
		},
		{name: "empty", raw: ``, wantErr: "origin"},
		{name: "malformed", raw: `{`, wantErr: "origin"},
		{name: "unknown discriminant", raw: `{"ot":"scraped","source":"web"}`, wantErr: "origin.ot"},
		{name: "user missing source", raw: `{"ot":"user"}`, wantErr: "origin.source"},
		{name: "generated missing generator", raw: `{"ot":"generated","source":"dalle"}`, wantErr: "origin.generatorName"},
		{name: "user with generated field", raw: `{"ot":"user","source":"upload","prompt":"a cat"}`, wantErr: "origin"},
		{name: "generated with user field", raw: `{"ot":"generated","source":"dalle","generatorName":"g","fileName":"a.png"}`, wantErr: "origin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, g, err := decodeOrigin(json.RawMessage(tt.raw))
			if tt.wantErr != "" {
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantErr, ve.Field)
				return
			}
			assert.NoError(t, err)
			tt.check(t, u, g)
		})
	}
}

func TestValidateMetadata(t *testing.T) {
	tests := []struct {
		name      string
		assetType model.AssetType
		raw       string
		wantErr   bool
	}{
		{name: "image minimal", assetType: model.AssetTypeImage, raw: `{"width":10,"height":20}`},
		{name: "image full", assetType: model.AssetTypeImage, raw: `{"width":10,"height":20,"averageColor":"#fff","author":"me","tags":["a"],"description":"d"}`},
		{name: "image missing height", assetType: model.AssetTypeImage, raw: `{"width":10}`, wantErr: true},
		{name: "image unknown field", assetType: model.AssetTypeImage, raw: `{"width":10,"height":20,"dpi":300}`, wantErr: true},
		{name: "image given audio shape", assetType: model.AssetTypeImage, raw: `{"duration":3,"sampleRate":44100}`, wantErr: true},
		{name: "audio minimal", assetType: model.AssetTypeAudio, raw: `{"duration":3.5,"sampleRate":44100}`},
		{name: "audio full", assetType: model.AssetTypeAudio, raw: `{"duration":3.5,"sampleRate":44100,"bitrate":128,"channels":2}`},
		{name: "audio missing sampleRate", assetType: model.AssetTypeAudio, raw: `{"duration":3.5}`, wantErr: true},
		{name: "audio given image shape", assetType: model.AssetTypeAudio, raw: `{"width":10,"height":20}`, wantErr: true},
		{name: "empty", assetType: model.AssetTypeImage, raw: ``, wantErr: true},
		{name: "unknown type", assetType: model.AssetType("VIDEO"), raw: `{"width":10,"height":20}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMetadata(tt.assetType, json.RawMessage(tt.raw))
			if tt.wantErr {
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
