package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strings"
)

// Regex for valid subreddit names
var subNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,21}$`)

// Draft is a local post to be authored at startup
type Draft struct {
	Title     string
	Body      string
	Subreddit string
}

// LoadDrafts reads title,body,subreddit rows. The header is skipped, rows
// without a title are dropped, invalid subreddit names are blanked so the
// store falls back to its default.
func LoadDrafts(path string) ([]Draft, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadDrafts(f)
}

func ReadDrafts(in io.Reader) ([]Draft, error) {
	// Wrap in BOM stripper
	r := csv.NewReader(stripBOM(in))
	r.FieldsPerRecord = -1

	var drafts []Draft
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return drafts, err
		}
		line++
		if line == 1 {
			continue
		} // Skip header

		// Validation (Fail-Soft)
		d := Draft{Title: strings.TrimSpace(field(record, 0))}
		if d.Title == "" {
			continue
		}
		d.Body = field(record, 1)

		sub := strings.TrimPrefix(strings.TrimSpace(field(record, 2)), "r/")
		if subNameRegex.MatchString(sub) {
			d.Subreddit = sub
		}

		drafts = append(drafts, d)
	}
	return drafts, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
