package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// FormatDuration renders an ISO 8601 duration such as PT1H2M3S as
// "1:02:03", or "M:SS" below one hour. Days fold into hours. Anything it
// cannot read becomes "0:00".
func FormatDuration(iso string) string {
	m := isoDurationPattern.FindStringSubmatch(iso)
	if m == nil {
		return "0:00"
	}

	days, hours, minutes, seconds := atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4])
	hours += days * 24
	minutes += seconds / 60
	seconds %= 60
	hours += minutes / 60
	minutes %= 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
