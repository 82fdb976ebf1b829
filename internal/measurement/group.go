package measurement

import (
	"fmt"
	"strconv"
)

// TransponderGroup summarizes the channels carried by one transponder.
type TransponderGroup struct {
	Band        string  `json:"band"`
	Transponder string  `json:"transponder"`
	GSNR        float64 `json:"gsnr"`
	// Channels is the index of the group's last channel, as the report
	// numbers channels per transponder.
	Channels int `json:"channels"`
}

// BandGroups is the ordered set of transponder groups measured in one band.
type BandGroups struct {
	Band   string             `json:"band"`
	Groups []TransponderGroup `json:"groups"`
}

// Stats describes how a band's input was consumed.
type Stats struct {
	Records int `json:"records"`
	Skipped int `json:"skipped"`
}

// Group partitions records into contiguous transponder groups. Every record
// with channel index 1 opens a new group; the first record always opens TR1.
func Group(band string, records []ChannelRecord) []TransponderGroup {
	var groups []TransponderGroup
	var sum float64
	var count int

	flush := func(last ChannelRecord) {
		groups = append(groups, TransponderGroup{
			Band:        band,
			Transponder: fmt.Sprintf("TR%d", len(groups)+1),
			GSNR:        round2(sum / float64(count)),
			Channels:    last.Channel,
		})
	}

	for i, rec := range records {
		if i > 0 && rec.Channel == 1 {
			flush(records[i-1])
			sum, count = 0, 0
		}
		sum += rec.GSNR
		count++
	}
	if count > 0 {
		flush(records[len(records)-1])
	}
	return groups
}

// Aggregate parses a band's lines and groups them by transponder.
func Aggregate(in BandInput) (BandGroups, Stats, error) {
	records, skipped, err := ParseLines(in.Lines)
	stats := Stats{Records: len(records), Skipped: skipped}
	if err != nil {
		return BandGroups{Band: in.Band}, stats, fmt.Errorf("band %s: %w", in.Band, err)
	}
	return BandGroups{Band: in.Band, Groups: Group(in.Band, records)}, stats, nil
}

// round2 rounds half to even on the exact binary value, matching %.2f.
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
