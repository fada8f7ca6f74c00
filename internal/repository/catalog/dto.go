package catalog

// descriptorDTO is the on-disk shape of one code configuration record.
type descriptorDTO struct {
	CodeName      string `json:"code_name"`      // two-letter abbreviation
	CodeFullName  string `json:"code_full_name"` // full display name
	CodeShortName string `json:"code_short_name,omitempty"`
	Version       string `json:"version,omitempty"`
}
