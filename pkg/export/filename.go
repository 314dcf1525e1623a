// Package export holds pieces shared by both report exporters.
package export

import (
	"fmt"
	"strings"
	"time"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// SanitizeName strips every character outside [a-zA-Z0-9] so the
// organization name is safe inside a filename.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Filename builds the export attachment name, e.g.
// "SmithJonesInc_Transactions_2026-01-01_to_2026-03-31.xlsx".
func Filename(orgName string, start, end time.Time, ext string) string {
	return fmt.Sprintf("%s_Transactions_%s_to_%s.%s",
		SanitizeName(orgName),
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
		ext)
}
