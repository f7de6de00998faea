package loan

import (
	"math/big"
	"time"
)

// TimeLayout renders timestamps the way an en-US browser's toLocaleString does.
const TimeLayout = "1/2/2006, 3:04:05 PM"

// FormatTokens renders wei as tokens with two decimals, e.g. "1.50".
func FormatTokens(wei *big.Int) string { return ToTokens(wei).StringFixed(2) }

// FormatTimestamp renders unix seconds in loc (UTC when nil).
func FormatTimestamp(ts uint64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(int64(ts), 0).In(loc).Format(TimeLayout)
}

// ShortenAddress keeps the first 6 and last 4 characters: 0x1234...abcd.
func ShortenAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}
