package youtube

import (
	"regexp"
	"strconv"
)

var durationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration converts an ISO 8601 duration from the video details API
// into seconds. Livestreams report "P0D", which parses to 0. Unparseable
// values also map to 0 so they fall into the livestream bucket.
func ParseDuration(iso string) int64 {
	m := durationPattern.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	days := atoi(m[1])
	hours := atoi(m[2])
	minutes := atoi(m[3])
	seconds := atoi(m[4])
	return ((days*24+hours)*60+minutes)*60 + seconds
}

func atoi(s string) int64 {
	if s == "" {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
