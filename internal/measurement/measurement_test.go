package measurement

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bandReport = `GNPy channel report - band L
 Ch   Frequency(THz)  Power(dBm)  OSNR_ASE  SNR_NLI  GSNR
------------------------------------------------------------
  1   186.1000        -1.25       24.10     27.80    18.50
  2   186.1500        -1.30       24.00     27.60    18.30

  1   186.2000        -0.95       23.40     26.10    17.00
  2   186.2500        -0.90       23.50     26.20    17.10
  3   186.3000        -0.85       23.60     26.30    17.30
------------------------------------------------------------
total                                                 done
`

func TestParseLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		wantOK bool
		want   ChannelRecord
	}{
		{
			name:   "record",
			line:   "  12   193.1000   -1.25   24.10   27.80   18.52",
			wantOK: true,
			want: ChannelRecord{
				Channel: 12, Frequency: 193.1, FrequencyToken: "193.1000",
				Power: -1.25, PowerToken: "-1.25", OSNR: 24.10, OSNRToken: "24.10",
				SNRNLI: 27.80, SNRNLIToken: "27.80", GSNR: 18.52,
			},
		},
		{
			name:   "positive power tab separated",
			line:   "3\t191.35\t0.50\t30\t31.2\t25.01",
			wantOK: true,
			want: ChannelRecord{
				Channel: 3, Frequency: 191.35, FrequencyToken: "191.35",
				Power: 0.5, PowerToken: "0.50", OSNR: 30, OSNRToken: "30",
				SNRNLI: 31.2, SNRNLIToken: "31.2", GSNR: 25.01,
			},
		},
		{name: "header", line: " Ch   Frequency(THz)  Power(dBm)  OSNR_ASE  SNR_NLI  GSNR"},
		{name: "blank", line: ""},
		{name: "power without two decimals", line: "1 193.1 -1.2 24.1 27.8 18.5"},
		{name: "frequency without decimal point", line: "1 193 -1.25 24.1 27.8 18.5"},
		{name: "footer", line: "total done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLineMalformedNumber(t *testing.T) {
	_, ok, err := ParseLine("1 193.1000 -1.25 24.1 27.8 1.2.3")
	assert.True(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gsnr")
}

func TestParseLineMalformedChannelIndexFails(t *testing.T) {
	// The pattern only admits digits here; an index overflowing int still fails.
	_, ok, err := ParseLine("99999999999999999999 193.1000 -1.25 24.1 27.8 18.5")
	assert.True(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel")
}

func TestParseLineToleratesPlaceholdersInUnusedColumns(t *testing.T) {
	rec, ok, err := ParseLine("1 193.1000 -1.25 - 1.2.3 18.5")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, rec.Channel)
	assert.Equal(t, 18.5, rec.GSNR)
	assert.Equal(t, -1.25, rec.Power)
	assert.True(t, math.IsNaN(rec.OSNR))
	assert.Equal(t, "-", rec.OSNRToken)
	assert.True(t, math.IsNaN(rec.SNRNLI))
	assert.Equal(t, "1.2.3", rec.SNRNLIToken)
}

func TestAggregateKeepsRecordsWithPlaceholderColumns(t *testing.T) {
	bg, stats, err := Aggregate(BandInput{Band: "C", Lines: []string{
		"1 193.1000 -1.25 - 27.8 18.5",
		"2 193.1500 -1.25 24.1 -- 18.7",
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Records)
	require.Len(t, bg.Groups, 1)
	assert.Equal(t, TransponderGroup{Band: "C", Transponder: "TR1", GSNR: 18.6, Channels: 2}, bg.Groups[0])
}

func TestGroupSplitsOnChannelOne(t *testing.T) {
	records := []ChannelRecord{
		{Channel: 1, GSNR: 18.5},
		{Channel: 2, GSNR: 18.3},
		{Channel: 1, GSNR: 17.0},
		{Channel: 2, GSNR: 17.1},
		{Channel: 3, GSNR: 17.3},
	}

	groups := Group("L", records)
	require.Len(t, groups, 2)
	assert.Equal(t, TransponderGroup{Band: "L", Transponder: "TR1", GSNR: 18.4, Channels: 2}, groups[0])
	assert.Equal(t, TransponderGroup{Band: "L", Transponder: "TR2", GSNR: 17.13, Channels: 3}, groups[1])
}

func TestGroupChannelsIsLastIndex(t *testing.T) {
	// Channels reports the last channel index, not how many records there were.
	records := []ChannelRecord{
		{Channel: 1, GSNR: 10},
		{Channel: 5, GSNR: 12},
	}
	groups := Group("C", records)
	require.Len(t, groups, 1)
	assert.Equal(t, 5, groups[0].Channels)
	assert.Equal(t, 11.0, groups[0].GSNR)
}

func TestGroupFirstRecordOpensFirstGroup(t *testing.T) {
	records := []ChannelRecord{
		{Channel: 4, GSNR: 10},
		{Channel: 5, GSNR: 10},
		{Channel: 1, GSNR: 20},
	}
	groups := Group("C", records)
	require.Len(t, groups, 2)
	assert.Equal(t, "TR1", groups[0].Transponder)
	assert.Equal(t, 5, groups[0].Channels)
	assert.Equal(t, "TR2", groups[1].Transponder)
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, Group("C", nil))
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{17.133333, 17.13},
		{18.4, 18.4},
		{2.675, 2.67}, // 2.675 is stored just below the midpoint
		{0.125, 0.12}, // exact midpoint rounds to even
		{-1.005, -1},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAggregate(t *testing.T) {
	in := BandInput{Band: "L", Lines: strings.Split(bandReport, "\n")}

	bg, stats, err := Aggregate(in)
	require.NoError(t, err)
	assert.Equal(t, "L", bg.Band)
	assert.Equal(t, 5, stats.Records)
	assert.Equal(t, len(in.Lines)-5, stats.Skipped)

	require.Len(t, bg.Groups, 2)
	assert.Equal(t, 18.4, bg.Groups[0].GSNR)
	assert.Equal(t, 2, bg.Groups[0].Channels)
	assert.Equal(t, 17.13, bg.Groups[1].GSNR)
	assert.Equal(t, 3, bg.Groups[1].Channels)
}

func TestAggregateNoRecords(t *testing.T) {
	for name, lines := range map[string][]string{
		"empty":       nil,
		"all invalid": {"header", "", "----", "footer 1 2"},
	} {
		t.Run(name, func(t *testing.T) {
			bg, stats, err := Aggregate(BandInput{Band: "S1", Lines: lines})
			require.NoError(t, err)
			assert.Empty(t, bg.Groups)
			assert.Equal(t, 0, stats.Records)
		})
	}
}

func TestAggregateMalformedRecord(t *testing.T) {
	_, _, err := Aggregate(BandInput{Band: "C", Lines: []string{
		"1 193.1000 -1.25 24.1 27.8 18.5",
		"2 193.1500 -1.25 24.1 27.8 -",
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "band C")
	assert.Contains(t, err.Error(), "line 2")
}

func TestBandFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"/data/resultados/bandC.txt", "C", false},
		{"bandS1.txt", "S1", false},
		{"results/bandL_run2.txt", "L", false},
		{"/data/band/other.txt", "", true},
		{"bandc.txt", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := BandFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadBandFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bandL.txt")
	require.NoError(t, os.WriteFile(path, []byte(bandReport), 0o644))

	in, err := ReadBandFile(path)
	require.NoError(t, err)
	assert.Equal(t, "L", in.Band)
	assert.Equal(t, path, in.Source)
	assert.Equal(t, "GNPy channel report - band L", in.Lines[0])

	_, err = ReadBandFile(filepath.Join(dir, "bandC.txt"))
	assert.Error(t, err)
}

func TestReadBandFileLongLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bandC.txt")
	long := "# " + strings.Repeat("x", 200*1024)
	data := long + "\n1 191.3500 0.50 30.1 28.2 22.50\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	in, err := ReadBandFile(path)
	require.NoError(t, err)
	require.Len(t, in.Lines, 2)
	assert.Len(t, in.Lines[0], len(long))

	bg, _, err := Aggregate(in)
	require.NoError(t, err)
	require.Len(t, bg.Groups, 1)
	assert.Equal(t, 22.5, bg.Groups[0].GSNR)
}
