package writer

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Request is the generation form as submitted by the user.
type Request struct {
	Topic          string `json:"topic"`
	TargetAudience string `json:"target_audience"`
	Keywords       string `json:"keywords"`
	WordCount      string `json:"word_count"`
}

// ValidationError is an input problem found before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (r Request) normalized() Request {
	r.Topic = strings.TrimSpace(r.Topic)
	r.TargetAudience = strings.TrimSpace(r.TargetAudience)
	r.Keywords = strings.TrimSpace(r.Keywords)
	r.WordCount = strings.TrimSpace(r.WordCount)
	return r
}

// validate checks the fields in form order and reports the first failure,
// so the user sees one message at a time.
func validate(apiKey string, r Request) error {
	checks := []struct {
		field string
		value string
		rule  validation.Rule
	}{
		{"api_key", strings.TrimSpace(apiKey), validation.Required.Error("กรุณาใส่ API Key")},
		{"topic", r.Topic, validation.Required.Error("กรุณาใส่หัวข้อบทความ")},
		{"target_audience", r.TargetAudience, validation.Required.Error("กรุณาเลือกกลุ่มเป้าหมาย")},
	}
	for _, c := range checks {
		if err := validation.Validate(c.value, c.rule); err != nil {
			return &ValidationError{Field: c.field, Message: err.Error()}
		}
	}
	return nil
}
