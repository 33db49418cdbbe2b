package decoder

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type editForm struct {
	Rating *float64 `schema:"rating"`
	Review *string  `schema:"review"`
}

type findQuery struct {
	ID int `schema:"id"`
}

func TestDecode(t *testing.T) {
	d := New()
	var form editForm
	err := d.Decode(&form, url.Values{"rating": {"8.5"}, "review": {"Great"}, "csrf_token": {"x"}})
	require.NoError(t, err)
	require.NotNil(t, form.Rating)
	assert.Equal(t, 8.5, *form.Rating)
	assert.Equal(t, "Great", *form.Review)
}

func TestDecodeMissingLeavesNil(t *testing.T) {
	var form editForm
	require.NoError(t, New().Decode(&form, url.Values{"review": {"Great"}}))
	assert.Nil(t, form.Rating)
}

func TestFieldErrors(t *testing.T) {
	d := New()
	var form editForm
	err := d.Decode(&form, url.Values{"rating": {"eight"}})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"rating": "Value must be a valid number"}, FieldErrors(err))

	var query findQuery
	err = d.Decode(&query, url.Values{"id": {"tt123"}})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"id": "Value must be a valid integer"}, FieldErrors(err))

	assert.Nil(t, FieldErrors(assert.AnError))
}
