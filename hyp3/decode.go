package hyp3

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jrsteele09/hyp3-catalog/paginate"
)

const statusError = "ERROR"

// DecodePage decodes a listing response. Arrays are records, null or an empty object
// are an empty page, the invalid API key envelope is an auth error, and anything
// else is malformed.
func DecodePage[T any](raw Response) paginate.PageResult[T] {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return paginate.OK[T](nil)
	}

	switch body[0] {
	case '[':
		var records []T
		if err := json.Unmarshal(body, &records); err != nil {
			return paginate.Malformed[T](fmt.Sprintf("undecodable records: %v", err))
		}
		return paginate.OK(records)
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return paginate.Malformed[T](fmt.Sprintf("undecodable object: %v", err))
		}
		if len(fields) == 0 {
			return paginate.OK[T](nil)
		}
		var e errorResponse
		if err := json.Unmarshal(body, &e); err != nil || e.Status == nil {
			return paginate.Malformed[T]("object without status")
		}
		if *e.Status == statusError && e.Message == InvalidAPIKeyMessage {
			return paginate.AuthError[T](e.Message)
		}
		return paginate.Malformed[T](fmt.Sprintf("status %s: %s", *e.Status, e.Message))
	}
	return paginate.Malformed[T]("unexpected response")
}
