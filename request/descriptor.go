package request

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Descriptor describes one API call. It is resent unchanged on the retry.
type Descriptor struct {
	Method string
	Path   string
	// Body is sent as JSON. A []byte is sent as is; nil sends no body.
	Body   any
	Header http.Header
	// SkipAuthRefresh returns a 403 to the caller without refreshing.
	SkipAuthRefresh bool
}

func (d Descriptor) encodeBody() ([]byte, error) {
	switch b := d.Body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s body: %w", d.Method, d.Path, err)
		}
		return data, nil
	}
}

func (d Descriptor) method() string {
	if d.Method == "" {
		return http.MethodGet
	}
	return d.Method
}
