package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex inv_01JAB3SC6N0J8Q5Z4K6QW1ZEXR
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_CUSTOMER = "cust"
	UUID_PREFIX_SUPPLIER = "supp"
	UUID_PREFIX_PRODUCT  = "prod"
	UUID_PREFIX_INVOICE  = "inv"
	UUID_PREFIX_PAYMENT  = "pay"
	UUID_PREFIX_EVENT    = "evt"
)
