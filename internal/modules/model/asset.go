package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AssetType discriminates the stored payload kind.
type AssetType string

const (
	AssetTypeImage AssetType = "IMAGE"
	AssetTypeAudio AssetType = "AUDIO"
)

func (t AssetType) Valid() bool {
	return t == AssetTypeImage || t == AssetTypeAudio
}

// ContextID is the top-level ownership partition. Currently only GLOBAL is
// issued, but the column is an open string so new contexts need no migration.
type ContextID string

const ContextGlobal ContextID = "GLOBAL"

// ScopeID is the sub-partition within a context. (ContextID, ScopeID) together
// form the reachability partition: listing, bulk delete and GC never cross it.
type ScopeID string

const (
	ScopeAppChat          ScopeID = "APP_CHAT"
	ScopeAppDraw          ScopeID = "APP_DRAW"
	ScopeAttachmentDrafts ScopeID = "ATTACHMENT_DRAFTS"
)

// Origin discriminants.
const (
	OriginTypeUser      = "user"
	OriginTypeGenerated = "generated"
)

type Asset struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AssetType AssetType `gorm:"type:text;not null;index:idx_assets_type" json:"asset_type"`
	Label     string    `gorm:"type:text;not null" json:"label"`

	// Payload, opaque to this service. No transcoding, no payload validation.
	MimeType string `gorm:"type:text;not null" json:"mime_type"`
	Base64   string `gorm:"type:text;not null" json:"base64"`

	// Origin columns. OriginType selects which variant's columns are set;
	// the other variant's columns stay NULL.
	OriginType          string            `gorm:"type:text;not null" json:"origin_type"`
	OriginSource        string            `gorm:"type:text;not null" json:"origin_source"`
	OriginMedia         *string           `gorm:"type:text" json:"origin_media,omitempty"`
	OriginURL           *string           `gorm:"type:text" json:"origin_url,omitempty"`
	OriginFileName      *string           `gorm:"type:text" json:"origin_file_name,omitempty"`
	OriginGeneratorName *string           `gorm:"type:text" json:"origin_generator_name,omitempty"`
	OriginPrompt        *string           `gorm:"type:text" json:"origin_prompt,omitempty"`
	OriginParameters    datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"origin_parameters,omitempty"`
	OriginGeneratedAt   *time.Time        `gorm:"type:timestamptz" json:"origin_generated_at,omitempty"`

	// Type-specific attributes, validated against AssetType at the boundary.
	Metadata datatypes.JSON `gorm:"type:jsonb;not null" swaggertype:"object" json:"metadata"`

	// Reachability partition.
	ContextID ContextID `gorm:"type:text;not null;index:idx_assets_context_scope_type,priority:1" json:"context_id"`
	ScopeID   ScopeID   `gorm:"type:text;not null;index:idx_assets_context_scope_type,priority:2" json:"scope_id"`

	// Derived-data slot (thumbnails etc). Never required for correctness,
	// safe to be empty or stale.
	Cache datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"cache"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Asset) TableName() string { return "assets" }

// IsUserOrigin reports whether the record carries the user origin variant.
func (a *Asset) IsUserOrigin() bool { return a.OriginType == OriginTypeUser }

// IsGeneratedOrigin reports whether the record carries the generated origin variant.
func (a *Asset) IsGeneratedOrigin() bool { return a.OriginType == OriginTypeGenerated }

// Wire shapes for the service boundary.

// AssetData is the encoded payload as it travels on the wire.
type AssetData struct {
	MimeType string `json:"mimeType" binding:"required"`
	Base64   string `json:"base64" binding:"required"`
}

// UserOrigin describes content supplied by a person.
type UserOrigin struct {
	OT       string  `json:"ot"`
	Source   string  `json:"source"`
	Media    *string `json:"media,omitempty"`
	URL      *string `json:"url,omitempty"`
	FileName *string `json:"fileName,omitempty"`
}

// GeneratedOrigin describes content produced by a generative process.
type GeneratedOrigin struct {
	OT            string         `json:"ot"`
	Source        string         `json:"source"`
	GeneratorName string         `json:"generatorName"`
	Prompt        string         `json:"prompt"`
	Parameters    map[string]any `json:"parameters"`
	GeneratedAt   *time.Time     `json:"generatedAt,omitempty"`
}

type ImageAssetMetadata struct {
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	AverageColor *string  `json:"averageColor,omitempty"`
	Author       *string  `json:"author,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Description  *string  `json:"description,omitempty"`
}

type AudioAssetMetadata struct {
	Duration   float64 `json:"duration"`
	SampleRate int     `json:"sampleRate"`
	Bitrate    *int    `json:"bitrate,omitempty"`
	Channels   *int    `json:"channels,omitempty"`
}
