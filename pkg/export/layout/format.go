package layout

import (
	"fmt"
	"strings"

	"github.com/dswhitely1/donthetreasurer/pkg/models/domain"
)

// FormatCents renders a signed cents amount in the fixed report currency
// convention: dollar-prefixed, two decimals, thousands-separated, with a
// leading minus for negatives ("-$1,234.56").
func FormatCents(c domain.Cents) string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(v/100), v%100)
}

func groupThousands(v int64) string {
	digits := fmt.Sprintf("%d", v)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}
