package record

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestFieldsMarshalJSONKeepsOrder(t *testing.T) {
	f := ParseFields(gjson.Parse(`{"z":1,"a":"Smith & <Co>","m":3.5,"b":true,"n":null,"tags":["x",{"k":2,"c":1}]}`))

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(struct {
		Fields *Fields `json:"fields"`
	}{f}))
	assert.Equal(t, `{"fields":{"z":1,"a":"Smith & <Co>","m":3.5,"b":true,"n":null,"tags":["x",{"k":2,"c":1}]}}`+"\n", buf.String())

	b, err := f.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":"Smith & <Co>","m":3.5,"b":true,"n":null,"tags":["x",{"k":2,"c":1}]}`, string(b))
}

func TestFieldsMarshalJSONDates(t *testing.T) {
	f := NewFields().
		Set("date", time.Date(2022, 1, 1, 14, 55, 0, 0, time.UTC)).
		Set("count", 3)

	b, err := f.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"date":"2022-01-01 14:55:00","count":3}`, string(b))
}

func TestFieldsMarshalJSONEmpty(t *testing.T) {
	var nilFields *Fields
	b, err := nilFields.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))

	b, err = NewFields().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}
