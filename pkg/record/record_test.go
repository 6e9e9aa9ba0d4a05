package record

import (
	"encoding/json"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/restorm/pkg/core"
	"github.com/aretw0/restorm/pkg/metadata"
)

func TestRecord_Identifier(t *testing.T) {
	md := core.ResourceMetadata{Class: "Blog", Resource: "blogs", IdentifierField: "id"}

	r := New("Blog")
	id, err := metadata.IdentifierValue(md, r)
	require.NoError(t, err)
	assert.Nil(t, id, "new record has no identifier")

	r.Set("id", float64(7))
	id, err = metadata.IdentifierValue(md, r)
	require.NoError(t, err)
	assert.Equal(t, float64(7), id)

	r.Set("id", "")
	id, err = metadata.IdentifierValue(md, r)
	require.NoError(t, err)
	assert.Nil(t, id, "empty string counts as absent")

	_, err = metadata.IdentifierValue(md, New("Tag"))
	var invalid *core.InvalidObjectError
	assert.ErrorAs(t, err, &invalid)

	assert.Equal(t, "Blog", core.ClassOf(r))
}

func TestRecord_JSON(t *testing.T) {
	r := New("Blog")
	r.Set("title", "Hello")
	r.Set("tags", []any{"a"})

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Hello","tags":["a"]}`, string(data))

	original := r.Fields
	decoded := *r
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"title":"Saved"}`), &decoded))
	assert.Equal(t, "Blog", decoded.Class)
	assert.Equal(t, float64(3), decoded.Fields["id"])
	_, leaked := original["id"]
	assert.False(t, leaked, "decoding must not write into the source map")

	empty, err := json.Marshal(Record{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(empty))
}

func TestRecord_XML(t *testing.T) {
	r := New("Blog")
	r.Set("title", "Hello")
	r.Set("id", 4)
	r.Set("meta", map[string]any{"k": "v"})

	data, err := xml.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `<record><id>4</id><meta>{&#34;k&#34;:&#34;v&#34;}</meta><title>Hello</title></record>`, string(data))

	var back Record
	require.NoError(t, xml.Unmarshal([]byte(`<blog id="4"><title>Hello</title></blog>`), &back))
	assert.Equal(t, Fields{"id": "4", "title": "Hello"}, back.Fields)
}
