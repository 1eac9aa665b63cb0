package models

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateID builds a unique resource id with a type prefix.
// Example: GenerateID("order") -> "order:1f6c..."
func GenerateID(resourceType string) string {
	return fmt.Sprintf("%s:%s", resourceType, uuid.New().String())
}
