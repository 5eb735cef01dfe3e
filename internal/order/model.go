package order

import (
	"strings"

	"github.com/google/uuid"
)

// NewOrderNumber draws a customer-facing order number at settlement time.
// The uuid space makes in-session collisions a non-issue.
func NewOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "ORD-" + id[:8]
}
