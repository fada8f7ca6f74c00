package bleve

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/attorney-tools/codesearch/internal/domain"
)

// buildMapping defines the statute section schema. The code and
// section_number fields are keyword-analyzed so scope clauses and citation
// lookups match whole values; everything else is standard-analyzed prose.
// All fields are stored so results can be populated without a second fetch.
func buildMapping() mapping.IndexMapping {
	keywordField := func() *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = keyword.Name
		f.Store = true
		f.IncludeInAll = false
		return f
	}
	textField := func() *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = standard.Name
		f.Store = true
		f.IncludeInAll = false
		f.IncludeTermVectors = true // required for excerpt highlighting
		return f
	}

	section := bleve.NewDocumentMapping()
	section.AddFieldMappingsAt(domain.FieldCode, keywordField())
	section.AddFieldMappingsAt(domain.FieldSectionNumber, keywordField())
	section.AddFieldMappingsAt(domain.FieldCodeName, textField())
	section.AddFieldMappingsAt(domain.FieldTitle, textField())
	section.AddFieldMappingsAt(domain.FieldSubtitle, textField())
	section.AddFieldMappingsAt(domain.FieldChapter, textField())
	section.AddFieldMappingsAt(domain.FieldSubchapter, textField())
	section.AddFieldMappingsAt(domain.FieldSectionPrefix, keywordField())
	section.AddFieldMappingsAt(domain.FieldSectionName, textField())
	section.AddFieldMappingsAt(domain.FieldText, textField())
	section.AddFieldMappingsAt(domain.FieldSourceText, textField())
	section.AddFieldMappingsAt(domain.FieldFutureEffectiveDate, keywordField())
	section.AddFieldMappingsAt(domain.FieldFilename, keywordField())

	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name
	im.DefaultMapping = section
	return im
}
