package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListKey(t *testing.T) {
	assert.Equal(t, "categories:list:root", listKey(""))
	assert.Equal(t, "categories:list:abc", listKey("abc"))
}
