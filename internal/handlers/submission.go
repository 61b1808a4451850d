package handlers

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
)

const maxSubmissionBytes = 1 << 20

// decodeSubmission reads checkout form values from a form-encoded or JSON body.
// JSON booleans become "1" or "0" and nulls are treated as absent.
func decodeSubmission(w http.ResponseWriter, r *http.Request) (models.Submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("failed to parse form: %w", err)
		}
		sub := make(models.Submission, len(r.PostForm))
		for key, values := range r.PostForm {
			if len(values) > 0 {
				sub[key] = values[0]
			}
		}
		return sub, nil
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode submission: %w", err)
	}

	sub := make(models.Submission, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			sub[key] = v
		case bool:
			sub[key] = "0"
			if v {
				sub[key] = "1"
			}
		case float64:
			sub[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case nil:
		default:
			return nil, fmt.Errorf("field %s must be a scalar value", key)
		}
	}
	return sub, nil
}
