package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type editInput struct {
	Rating *float64 `json:"rating" validate:"required,gte=0,lte=10"`
	Review *string  `json:"review" validate:"required,notblank,max=30"`
	Note   string   `validate:"omitempty,max=3" errorMsg:"Too long"`
}

func ptr[T any](v T) *T { return &v }

func TestValidateStruct(t *testing.T) {
	v := New()
	testCases := []struct {
		name  string
		input editInput
		want  map[string]string
	}{
		{
			name:  "valid",
			input: editInput{Rating: ptr(8.5), Review: ptr("Great")},
		},
		{
			name:  "zero rating is allowed",
			input: editInput{Rating: ptr(0.0), Review: ptr("meh")},
		},
		{
			name:  "missing fields",
			input: editInput{},
			want: map[string]string{
				"rating": "This field is required",
				"review": "This field is required",
			},
		},
		{
			name:  "out of range and blank",
			input: editInput{Rating: ptr(10.5), Review: ptr("   ")},
			want: map[string]string{
				"rating": "Value should be less than or equal to 10",
				"review": "This field must not be blank",
			},
		},
		{
			name:  "review too long",
			input: editInput{Rating: ptr(-1.0), Review: ptr("This review is much longer than thirty")},
			want: map[string]string{
				"rating": "Value should be greater than or equal to 0",
				"review": "The maximum length is 30 characters",
			},
		},
		{
			name:  "custom message and snake case name",
			input: editInput{Rating: ptr(1.0), Review: ptr("ok"), Note: "long"},
			want:  map[string]string{"note": "Too long"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateStruct(v, &tc.input))
		})
	}
}
