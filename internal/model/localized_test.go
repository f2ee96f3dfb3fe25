package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedTextUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want LocalizedText
	}{
		{"plain string", `"الوحدة الأولى"`, LocalizedText{Raw: "الوحدة الأولى"}},
		{"object", `{"ar":"الوحدة","en":"Unit One"}`, LocalizedText{Ar: "الوحدة", En: "Unit One"}},
		{"encoded object in string", `"{\"ar\":\"الوحدة\",\"en\":\"Unit One\"}"`, LocalizedText{Ar: "الوحدة", En: "Unit One"}},
		{"object with one language", `{"en":"Algebra"}`, LocalizedText{En: "Algebra"}},
		{"string that only looks like json", `"{not an object}"`, LocalizedText{Raw: "{not an object}"}},
		{"empty string", `""`, LocalizedText{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got LocalizedText
			require.NoError(t, json.Unmarshal([]byte(tc.in), &got))
			assert.Equal(t, tc.want, got)
		})
	}

	var got LocalizedText
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
}

func TestLocalizedTextMarshal(t *testing.T) {
	b, err := json.Marshal(LocalizedText{Ar: "الوحدة", En: "Unit One"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ar":"الوحدة","en":"Unit One"}`, string(b))

	b, err = json.Marshal(LocalizedText{Raw: "Unit One"})
	require.NoError(t, err)
	assert.Equal(t, `"Unit One"`, string(b))
}

func TestLocalizedTextResolve(t *testing.T) {
	both := LocalizedText{Ar: "الوحدة", En: "Unit One"}
	assert.Equal(t, "الوحدة", both.Resolve("ar"))
	assert.Equal(t, "Unit One", both.Resolve("en"))

	arOnly := LocalizedText{Ar: "الوحدة"}
	assert.Equal(t, "الوحدة", arOnly.Resolve("en"), "falls back to the other language")

	raw := LocalizedText{Raw: "Algebra"}
	assert.Equal(t, "Algebra", raw.Resolve("ar"))
	assert.Equal(t, "Algebra", raw.Resolve("en"))
}

func TestLocalizedTextScan(t *testing.T) {
	var t1 LocalizedText
	require.NoError(t, t1.Scan([]byte(`{"ar":"الوحدة","en":"Unit One"}`)))
	assert.Equal(t, LocalizedText{Ar: "الوحدة", En: "Unit One"}, t1)

	var t2 LocalizedText
	require.NoError(t, t2.Scan(nil))
	assert.True(t, t2.IsZero())

	var t3 LocalizedText
	assert.Error(t, t3.Scan(42))
}

func TestLocalizedTextValue(t *testing.T) {
	v, err := LocalizedText{Ar: "الوحدة", En: "Unit One"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"ar":"الوحدة","en":"Unit One"}`, v.(string))
}
