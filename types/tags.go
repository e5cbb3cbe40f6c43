package types

// TagType distinguishes tags built from named entities and from keywords.
type TagType string

const (
	TagTypeEntity  TagType = "entity"
	TagTypeKeyword TagType = "keyword"
)

// TaggingRequest is the body of POST /generate-tags.
type TaggingRequest struct {
	Text         *string  `json:"text" binding:"required"`
	Title        *string  `json:"title"`
	ExistingTags []string `json:"existing_tags"`
	MaxTags      *int     `json:"max_tags" binding:"omitempty,gte=1"`
}

// Tag is a single suggested tag. EntityType is only set for entity tags.
type Tag struct {
	Tag        string  `json:"tag"`
	Type       TagType `json:"type"`
	EntityType string  `json:"entity_type,omitempty"`
	Relevance  float64 `json:"relevance"`
}

// CategorizedTags splits the final tag list by tag type.
type CategorizedTags struct {
	Entities []Tag `json:"entities"`
	Keywords []Tag `json:"keywords"`
}

// TagReport is the response of POST /generate-tags.
type TagReport struct {
	SuggestedTags   []Tag           `json:"suggested_tags"`
	NewTags         []Tag           `json:"new_tags"`
	CategorizedTags CategorizedTags `json:"categorized_tags"`
	TagCount        int             `json:"tag_count"`
}
