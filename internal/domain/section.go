// Package domain holds the statute search domain model: indexed sections,
// code descriptors, the response envelope, and the error taxonomy.
package domain

// Index field names for statute sections. Used by the index mapping, the
// query builder, and stored-field retrieval.
const (
	FieldCode                = "code"
	FieldCodeName            = "code_name"
	FieldTitle               = "title"
	FieldSubtitle            = "subtitle"
	FieldChapter             = "chapter"
	FieldSubchapter          = "subchapter"
	FieldSectionPrefix       = "section_prefix"
	FieldSectionNumber       = "section_number"
	FieldSectionName         = "section_name"
	FieldText                = "text"
	FieldSourceText          = "source_text"
	FieldFutureEffectiveDate = "future_effective_date"
	FieldFilename            = "filename"
)

// Display sentinels for absent fields. Absence is a display placeholder,
// never an error; these strings are part of the wire contract.
const (
	NoCode                = "NO CODE"
	NoCodeName            = "NO CODE NAME"
	NoTitle               = "NO TITLE"
	NoSubtitle            = "NO SUBTITLE"
	NoChapter             = "NO CHAPTER"
	NoSubchapter          = "NO SUBCHAPTER"
	NoSectionPrefix       = "NO SECTION PREFIX"
	NoSectionNumber       = "NO SECTION NUMBER"
	NoSectionName         = "NO SECTION NAME"
	NoText                = "NO TEXT"
	NoSourceText          = "SOURCE TEXT NOT AVAILABLE"
	NoFutureEffectiveDate = "N/A"
	NoFilename            = "NO FILENAME"
)

// Section is one indexed unit of codified statutory text.
type Section struct {
	Code                string `json:"code"`
	CodeName            string `json:"code_name"`
	Title               string `json:"title"`
	Subtitle            string `json:"subtitle"`
	Chapter             string `json:"chapter"`
	Subchapter          string `json:"subchapter"`
	SectionPrefix       string `json:"section_prefix"`
	SectionNumber       string `json:"section_number"`
	SectionName         string `json:"section_name"`
	Text                string `json:"text"`
	SourceText          string `json:"source_text"`
	FutureEffectiveDate string `json:"future_effective_date"`
	Filename            string `json:"filename"`
	Highlights          string `json:"highlights"`
}

// SectionFromStored builds a Section from stored index fields, substituting
// the display sentinel for any absent field.
func SectionFromStored(fields map[string]string, highlights string) Section {
	get := func(name, sentinel string) string {
		if v, ok := fields[name]; ok && v != "" {
			return v
		}
		return sentinel
	}
	return Section{
		Code:                get(FieldCode, NoCode),
		CodeName:            get(FieldCodeName, NoCodeName),
		Title:               get(FieldTitle, NoTitle),
		Subtitle:            get(FieldSubtitle, NoSubtitle),
		Chapter:             get(FieldChapter, NoChapter),
		Subchapter:          get(FieldSubchapter, NoSubchapter),
		SectionPrefix:       get(FieldSectionPrefix, NoSectionPrefix),
		SectionNumber:       get(FieldSectionNumber, NoSectionNumber),
		SectionName:         get(FieldSectionName, NoSectionName),
		Text:                get(FieldText, NoText),
		SourceText:          get(FieldSourceText, NoSourceText),
		FutureEffectiveDate: get(FieldFutureEffectiveDate, NoFutureEffectiveDate),
		Filename:            get(FieldFilename, NoFilename),
		Highlights:          highlights,
	}
}

// SearchResult is the assembled response for one search: the effective query
// string, its parsed structural form, and the matched sections in rank order.
type SearchResult struct {
	QueryText string    `json:"query_text"`
	Query     string    `json:"query"`
	Count     int       `json:"count"`
	Documents []Section `json:"documents"`
}
