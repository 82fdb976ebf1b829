package measurement

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var bandPattern = regexp.MustCompile(`band([A-Z0-9]{1,2})`)

// maxLineBytes bounds a single report line.
const maxLineBytes = 4 << 20

// BandInput is the raw content of one band's measurement report.
type BandInput struct {
	Band   string   `json:"band"`
	Source string   `json:"source"`
	Lines  []string `json:"-"`
}

// BandFromPath extracts the band code from a file name such as bandS1.txt.
func BandFromPath(path string) (string, error) {
	m := bandPattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", fmt.Errorf("no band code in file name %q", path)
	}
	return m[1], nil
}

// ReadBandFile loads a band report from disk.
func ReadBandFile(path string) (BandInput, error) {
	band, err := BandFromPath(path)
	if err != nil {
		return BandInput{Source: path}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return BandInput{Band: band, Source: path}, fmt.Errorf("open band file: %w", err)
	}
	defer f.Close()

	in := BandInput{Band: band, Source: path}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		in.Lines = append(in.Lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return BandInput{Band: band, Source: path}, fmt.Errorf("read band file: %w", err)
	}
	return in, nil
}
