package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// LocalizedText normalizes the three shapes a title arrives in from the platform:
// a plain string, a JSON-encoded string holding an {ar,en} object, or the object
// itself. All parsing happens here, at the ingestion boundary.
type LocalizedText struct {
	Raw string `json:"-"`
	Ar  string `json:"ar,omitempty"`
	En  string `json:"en,omitempty"`
}

type localizedPair struct {
	Ar string `json:"ar"`
	En string `json:"en"`
}

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var pair localizedPair
	if err := json.Unmarshal(data, &pair); err == nil && (pair.Ar != "" || pair.En != "") {
		t.Ar = pair.Ar
		t.En = pair.En
		t.Raw = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("localized text: unsupported shape %s", string(data))
	}

	// a string payload may itself be an encoded {ar,en} object
	if strings.HasPrefix(strings.TrimSpace(s), "{") {
		if err := json.Unmarshal([]byte(s), &pair); err == nil && (pair.Ar != "" || pair.En != "") {
			t.Ar = pair.Ar
			t.En = pair.En
			t.Raw = ""
			return nil
		}
	}

	t.Raw = s
	t.Ar = ""
	t.En = ""
	return nil
}

func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if t.Ar == "" && t.En == "" {
		return json.Marshal(t.Raw)
	}
	return json.Marshal(localizedPair{Ar: t.Ar, En: t.En})
}

// Resolve picks the best text for a language tag ("ar" or "en").
func (t LocalizedText) Resolve(lang string) string {
	if lang == "en" {
		if t.En != "" {
			return t.En
		}
		if t.Ar != "" {
			return t.Ar
		}
		return t.Raw
	}
	if t.Ar != "" {
		return t.Ar
	}
	if t.En != "" {
		return t.En
	}
	return t.Raw
}

func (t LocalizedText) IsZero() bool {
	return t.Raw == "" && t.Ar == "" && t.En == ""
}

// Value stores the normalized form as jsonb.
func (t LocalizedText) Value() (driver.Value, error) {
	b, err := t.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal localized text: %w", err)
	}
	return string(b), nil
}

func (t *LocalizedText) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = LocalizedText{}
		return nil
	case []byte:
		return t.UnmarshalJSON(v)
	case string:
		return t.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("localized text: cannot scan %T", src)
	}
}
