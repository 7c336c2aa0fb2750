package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "Bathroom", CoalesceStr("", "  ", "Bathroom"))
	assert.Equal(t, "Main bath", CoalesceStr(" Main bath ", "Bathroom"))
	assert.Equal(t, "", CoalesceStr())
}
