// Package profile converts profiles to and from the flat users.txt format and
// exports them as YAML.
package profile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/lowkey/internal/model"
)

// minLegacyFields is the number of leading fields a users.txt line needs:
// name, best WPM, best accuracy and tests completed.
const minLegacyFields = 4

// legacyCharsPerTest is the per-test character estimate used for lines that
// predate the character totals.
const legacyCharsPerTest = 200

// ParseLegacy reads the whitespace-separated users.txt format:
//
//	name bestWPM bestAccuracy tests enduranceHigh avgAccuracy totalChars totalCorrect
//
// Fields are read left to right and parsing of a line stops at the first
// malformed field. Lines with fewer than four readable fields are skipped and
// reported in skipped.
func ParseLegacy(r io.Reader) (profiles []model.Profile, skipped []int, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		p, n := parseLegacyFields(fields)
		if n < minLegacyFields {
			skipped = append(skipped, lineNo)
			continue
		}
		estimateLegacyTotals(&p)
		profiles = append(profiles, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read users file: %w", err)
	}
	return profiles, skipped, nil
}

func parseLegacyFields(fields []string) (model.Profile, int) {
	p := model.Profile{Name: fields[0]}
	floats := []*float64{&p.BestWPM, &p.BestAccuracy}
	ints := []*int{&p.TestsCompleted, &p.EnduranceHighScore}
	n := 1
	for _, dst := range floats {
		if n >= len(fields) {
			return p, n
		}
		v, err := strconv.ParseFloat(fields[n], 64)
		if err != nil {
			return p, n
		}
		*dst = v
		n++
	}
	for _, dst := range ints {
		if n >= len(fields) {
			return p, n
		}
		v, err := strconv.Atoi(fields[n])
		if err != nil {
			return p, n
		}
		*dst = v
		n++
	}
	if n >= len(fields) {
		return p, n
	}
	avg, err := strconv.ParseFloat(fields[n], 64)
	if err != nil {
		return p, n
	}
	p.AverageAccuracy = avg
	n++
	for _, dst := range []*int{&p.TotalCharsTyped, &p.TotalCorrectChars} {
		if n >= len(fields) {
			return p, n
		}
		v, err := strconv.Atoi(fields[n])
		if err != nil {
			return p, n
		}
		*dst = v
		n++
	}
	return p, n
}

// estimateLegacyTotals fills the character totals for lines written before
// they were tracked.
func estimateLegacyTotals(p *model.Profile) {
	if p.TotalCharsTyped != 0 || p.TestsCompleted <= 0 {
		return
	}
	p.TotalCharsTyped = legacyCharsPerTest * p.TestsCompleted
	p.TotalCorrectChars = int(float64(p.TotalCharsTyped) * (p.BestAccuracy / 100))
	p.AverageAccuracy = p.BestAccuracy * 0.9
}

// WriteLegacy writes profiles in the users.txt format, one per line.
func WriteLegacy(w io.Writer, profiles []model.Profile) error {
	bw := bufio.NewWriter(w)
	for _, p := range profiles {
		if strings.ContainsAny(p.Name, " \t\n") || p.Name == "" {
			return fmt.Errorf("profile name %q cannot be written to users file", p.Name)
		}
		if _, err := fmt.Fprintf(bw, "%s %.2f %.2f %d %d %.2f %d %d\n",
			p.Name, p.BestWPM, p.BestAccuracy, p.TestsCompleted, p.EnduranceHighScore,
			p.AverageAccuracy, p.TotalCharsTyped, p.TotalCorrectChars); err != nil {
			return fmt.Errorf("failed to write users file: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush users file: %w", err)
	}
	return nil
}
