package validation

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/zhouzirui/video-catalog/backend/internal/apperrors"
)

// MaxBodyBytes caps request bodies read by DecodeRequest.
const MaxBodyBytes = 1 << 20

// Fields holds the raw values of a request body keyed by field name.
// JSON bodies contribute json.Number, string, bool, nil, or nested values;
// form bodies contribute strings only.
type Fields map[string]any

// DecodeRequest reads a JSON object or a urlencoded/multipart form body.
// An empty body yields empty Fields.
func DecodeRequest(w http.ResponseWriter, r *http.Request) (Fields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return decodeForm(r)
	default:
		return decodeJSON(r.Body)
	}
}

func decodeForm(r *http.Request) (Fields, error) {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		err = r.ParseMultipartForm(MaxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, "invalid form body")
	}

	fields := make(Fields, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields, nil
}

func decodeJSON(body io.Reader) (Fields, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, "failed to read request body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Fields{}, nil
	}

	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()
	var fields Fields
	if err := d.Decode(&fields); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, "invalid request body")
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, nil
}
