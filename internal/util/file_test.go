package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateImageFilename(t *testing.T) {
	name := GenerateImageFilename("My Car Photo (1).JPG")
	assert.True(t, strings.HasPrefix(name, "My-Car-Photo-1_"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	other := GenerateImageFilename("My Car Photo (1).JPG")
	assert.NotEqual(t, name, other)
}

func TestGenerateImageFilenameEmptyBase(t *testing.T) {
	name := GenerateImageFilename("???.png")
	assert.True(t, strings.HasPrefix(name, "image_"))
	assert.True(t, strings.HasSuffix(name, ".png"))
}
