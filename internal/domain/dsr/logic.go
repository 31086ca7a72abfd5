package dsr

import (
	"fmt"
	"maps"
)

// AnonymizedEmail is the placeholder written over a tombstoned employee's
// address. Derived from the employee id, so it cannot collide with any real
// address or another placeholder.
func AnonymizedEmail(employeeID string) string {
	return fmt.Sprintf("deleted_%s@deleted.com", employeeID)
}

// ExportFileName embeds both ids so concurrent exports for different
// requests never collide.
func ExportFileName(employeeID, requestID string) string {
	return fmt.Sprintf("export_%s_%s.json", employeeID, requestID)
}

func ReceiptFileName(employeeID, requestID string) string {
	return fmt.Sprintf("export_%s_%s.pdf", employeeID, requestID)
}

func BuildExportPayload(employee map[string]any, datasets map[string]any) map[string]any {
	payload := map[string]any{
		"employee": employee,
	}
	maps.Copy(payload, datasets)
	return payload
}
