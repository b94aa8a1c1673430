package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"soju", "soju"},
		{"%", `\%`},
		{"50% off", `50\% off`},
		{"name_en", `name\_en`},
		{`back\slash`, `back\\slash`},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, escapeLike(tc.in), "in=%q", tc.in)
	}
}
