package chi

import (
	"encoding/json"
	"net/http"

	"github.com/attorney-tools/codesearch/internal/domain"
	"github.com/attorney-tools/codesearch/internal/version"
)

// Stable wire codes. Clients switch on these, never on messages.
const (
	codeOK               = "OK"
	codeGeneral          = "ERR_GENERAL"
	codeTokenNotEnabled  = "ERR_TOKEN_NOT_ENABLED"
	codeTokenDataType    = "ERR_TOKEN_DATA_TYPE"
	codeRateLimit        = "ERR_RATE_LIMIT"
	codeQueryParse       = "ERR_QUERY_PARSE"
	codeIndexUnavailable = "ERR_INDEX_UNAVAILABLE"
)

// envelope is the non-search response body, for both success and error.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Version string `json:"version"`
}

// sectionDocument is a matched section on the wire, stamped with the
// service version.
type sectionDocument struct {
	domain.Section
	Version string `json:"version"`
}

// searchEnvelope is the body of a successful search response.
type searchEnvelope struct {
	QueryText string            `json:"query_text"`
	Query     string            `json:"query"`
	Count     int               `json:"count"`
	Documents []sectionDocument `json:"documents"`
	Version   string            `json:"version"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{
		Success: false,
		Message: message,
		Code:    code,
		Version: version.Version,
	})
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "OK",
		Code:    codeOK,
		Version: version.Version,
	})
}
