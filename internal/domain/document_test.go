package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_String(t *testing.T) {
	t.Parallel()

	doc := Document{
		"email": "a@x.com",
		"age":   42,
	}

	v, ok := doc.String("email")
	assert.True(t, ok)
	assert.Equal(t, "a@x.com", v)

	_, ok = doc.String("age")
	assert.False(t, ok, "non-string value")

	_, ok = doc.String("missing")
	assert.False(t, ok, "absent key")
}
