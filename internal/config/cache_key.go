package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// TestPaperKey returns the cache key for a test's rendered question paper.
func (r *CacheKeyStruct) TestPaperKey(testID int) string {
	return fmt.Sprintf("test:%d:paper", testID)
}

var CacheKey = NewCacheKeyStruct()
