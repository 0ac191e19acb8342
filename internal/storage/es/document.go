package es

import (
	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
)

// identityNamespace seeds the name-based ids so that one identity key always
// maps to the same Elasticsearch _id.
var identityNamespace = uuid.MustParse("6f1c2b0e-5d0a-4d8e-9a57-1c1f0f3e7a21")

func documentID(key string) uuid.UUID {
	return uuid.NewSHA1(identityNamespace, []byte(key))
}

type IndexBuilder struct{}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{}
}

func (b *IndexBuilder) mapToESDocument(doc *domain.Document) domain.Document {
	out := *doc
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Entities == nil {
		out.Entities = []domain.Entity{}
	}
	return out
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	entity := types.NewObjectProperty()
	entity.Properties = map[string]types.Property{
		"word":  types.NewKeywordProperty(),
		"label": types.NewKeywordProperty(),
	}

	rawText := types.NewTextProperty()
	indexed := false
	rawText.Index = &indexed

	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":           types.NewKeywordProperty(),
			"url":          types.NewKeywordProperty(),
			"source":       b.createTextPropertyWithKeyword(),
			"identity_key": types.NewKeywordProperty(),
			"raw_text":     rawText,
			"content_path": types.NewKeywordProperty(),
			"content_size": types.NewLongNumberProperty(),
			"entities":     entity,
			"tags":         types.NewKeywordProperty(),
			"severity":     types.NewDoubleNumberProperty(),
			"probability":  types.NewDoubleNumberProperty(),
			"language":     types.NewKeywordProperty(),
			"version":      types.NewLongNumberProperty(),
			"created_at":   types.NewDateProperty(),
			"updated_at":   types.NewDateProperty(),
		},
	}
}

func (b *IndexBuilder) createTextPropertyWithKeyword() types.Property {
	textProp := types.NewTextProperty()
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
