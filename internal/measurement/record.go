package measurement

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// recordPattern matches a channel line of the simulator's per-band report:
// channel, frequency, power, OSNR ASE, SNR NLI, GSNR.
var recordPattern = regexp.MustCompile(`^\s*(\d+)\s+(\d+\.\d+.*)\s+(-?\d+\.\d{2})\s+([\d\-\.]+)\s+([\d\-\.]+)\s+([\d\-\.]+)\s*$`)

var frequencyPrefix = regexp.MustCompile(`^\d+\.\d+`)

// ChannelRecord is one parsed channel line. Power, OSNR and SNRNLI are
// informational: they are NaN when the report carries a placeholder such as
// "-" and the raw text is kept in the matching token field.
type ChannelRecord struct {
	Channel        int     `json:"channel"`
	Frequency      float64 `json:"frequency"`
	FrequencyToken string  `json:"frequency_token"`
	Power          float64 `json:"-"`
	PowerToken     string  `json:"power"`
	OSNR           float64 `json:"-"`
	OSNRToken      string  `json:"osnr_ase"`
	SNRNLI         float64 `json:"-"`
	SNRNLIToken    string  `json:"snr_nli"`
	GSNR           float64 `json:"gsnr"`
}

// ParseLine parses a single report line. ok is false for lines that are not
// channel records (headers, blanks, footers); err is set when a record's
// channel index or GSNR is not a number.
func ParseLine(line string) (rec ChannelRecord, ok bool, err error) {
	if !recordPattern.MatchString(line) {
		return ChannelRecord{}, false, nil
	}
	fields := strings.Fields(line)
	n := len(fields)

	rec.Channel, err = strconv.Atoi(fields[0])
	if err != nil {
		return ChannelRecord{}, true, fmt.Errorf("channel %q: %w", fields[0], err)
	}
	rec.FrequencyToken = fields[1]
	rec.Frequency, _ = strconv.ParseFloat(frequencyPrefix.FindString(fields[1]), 64)

	rec.PowerToken, rec.Power = fields[n-4], lenientFloat(fields[n-4])
	rec.OSNRToken, rec.OSNR = fields[n-3], lenientFloat(fields[n-3])
	rec.SNRNLIToken, rec.SNRNLI = fields[n-2], lenientFloat(fields[n-2])

	rec.GSNR, err = strconv.ParseFloat(fields[n-1], 64)
	if err != nil {
		return ChannelRecord{}, true, fmt.Errorf("channel %d gsnr %q: %w", rec.Channel, fields[n-1], err)
	}
	return rec, true, nil
}

func lenientFloat(tok string) float64 {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseLines parses every record line, counting the lines that were skipped.
// The first malformed record aborts the band.
func ParseLines(lines []string) (records []ChannelRecord, skipped int, err error) {
	for i, line := range lines {
		rec, ok, err := ParseLine(line)
		if err != nil {
			return nil, skipped, fmt.Errorf("line %d: %w", i+1, err)
		}
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}
