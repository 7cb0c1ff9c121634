package cache

import (
	"crypto/sha1"
	"fmt"
)

// ConvertKey generates the Redis key for a cached conversion result. The key
// hashes every parameter that changes the output, including the model
// override.
func ConvertKey(country string, limit int, model string) string {
	hash := sha1.Sum([]byte(fmt.Sprintf("convert:%s:%d:%s", country, limit, model)))
	return fmt.Sprintf("cache:v1:convert:%x", hash)
}
