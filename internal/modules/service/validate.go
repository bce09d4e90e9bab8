package service

import (
	"bytes"
	"encoding/json"

	"github.com/memodb-io/assetd/internal/modules/model"
)

// Origin and metadata arrive as raw JSON and are decoded strictly: unknown
// fields are rejected here instead of being silently persisted.

func strictDecode(raw json.RawMessage, target any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}

// decodeOrigin validates the tagged union on its "ot" discriminant and
// returns exactly one populated variant.
func decodeOrigin(raw json.RawMessage) (*model.UserOrigin, *model.GeneratedOrigin, error) {
	if len(raw) == 0 {
		return nil, nil, validationErr("origin", "required")
	}

	var tag struct {
		OT string `json:"ot"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, nil, validationErr("origin", "malformed json")
	}

	switch tag.OT {
	case model.OriginTypeUser:
		var o model.UserOrigin
		if err := strictDecode(raw, &o); err != nil {
			return nil, nil, validationErr("origin", err.Error())
		}
		if o.Source == "" {
			return nil, nil, validationErr("origin.source", "required")
		}
		return &o, nil, nil

	case model.OriginTypeGenerated:
		var o model.GeneratedOrigin
		if err := strictDecode(raw, &o); err != nil {
			return nil, nil, validationErr("origin", err.Error())
		}
		if o.Source == "" {
			return nil, nil, validationErr("origin.source", "required")
		}
		if o.GeneratorName == "" {
			return nil, nil, validationErr("origin.generatorName", "required")
		}
		return nil, &o, nil

	default:
		return nil, nil, validationErr("origin.ot", "must be 'user' or 'generated'")
	}
}

// validateMetadata checks the closed metadata union against the asset type.
// An IMAGE asset must carry image metadata, an AUDIO asset audio metadata.
func validateMetadata(assetType model.AssetType, raw json.RawMessage) error {
	if len(raw) == 0 {
		return validationErr("metadata", "required")
	}

	switch assetType {
	case model.AssetTypeImage:
		var probe struct {
			Width        *int     `json:"width"`
			Height       *int     `json:"height"`
			AverageColor *string  `json:"averageColor"`
			Author       *string  `json:"author"`
			Tags         []string `json:"tags"`
			Description  *string  `json:"description"`
		}
		if err := strictDecode(raw, &probe); err != nil {
			return validationErr("metadata", err.Error())
		}
		if probe.Width == nil || probe.Height == nil {
			return validationErr("metadata", "image metadata requires width and height")
		}
		return nil

	case model.AssetTypeAudio:
		var probe struct {
			Duration   *float64 `json:"duration"`
			SampleRate *int     `json:"sampleRate"`
			Bitrate    *int     `json:"bitrate"`
			Channels   *int     `json:"channels"`
		}
		if err := strictDecode(raw, &probe); err != nil {
			return validationErr("metadata", err.Error())
		}
		if probe.Duration == nil || probe.SampleRate == nil {
			return validationErr("metadata", "audio metadata requires duration and sampleRate")
		}
		return nil

	default:
		return validationErr("asset_type", "must be IMAGE or AUDIO")
	}
}
