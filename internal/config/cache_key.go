package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// TuitionKey returns the cache key for a single tuition record
func (r *CacheKeyStruct) TuitionKey(tuitionID string) string {
	return fmt.Sprintf("tuition:%s", tuitionID)
}

// TuitionListKey returns the cache key for the full tuition listing
func (r *CacheKeyStruct) TuitionListKey() string {
	return "tuition:all"
}

var CacheKey = NewCacheKeyStruct()
