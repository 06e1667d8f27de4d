package utils_test

import (
	"regexp"
	"testing"
	"time"

	"court-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferenceCode(t *testing.T) {
	pattern := regexp.MustCompile(`^PB-\d{8}-[0-9A-F]{8}$`)

	code := utils.GenerateReferenceCode()
	assert.Regexp(t, pattern, code)
	assert.Contains(t, code, time.Now().Format("20060102"))
}

// The reference_code column is UNIQUE, so codes generated in a burst
// must not repeat.
func TestGenerateReferenceCodeNoCollisions(t *testing.T) {
	seen := make(map[string]struct{}, 500)
	for i := 0; i < 500; i++ {
		code := utils.GenerateReferenceCode()
		_, dup := seen[code]
		assert.False(t, dup, "duplicate reference code %s at draw %d", code, i)
		seen[code] = struct{}{}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := utils.HashPassword("s3cretpw")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cretpw", hash)

	assert.True(t, utils.CheckPasswordHash("s3cretpw", hash))
	assert.False(t, utils.CheckPasswordHash("wrongpw", hash))
}
