package ofcom

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"uk_numcheck/internal/domain/entity"
	"uk_numcheck/internal/domain/service/numplan"
	"uk_numcheck/pkg/logx"
)

const (
	colPrefix      = "prefix"
	colTotalLength = "total length"
	colStatus      = "status"
	colProvider    = "provider"
	colSABC        = "sabc"
	colDE          = "de"
)

// headerAliases maps normalized column headers to their canonical meaning.
// The published files have renamed columns across revisions, so one parser
// has to recognize all of them.
var headerAliases = map[string]string{ //nolint:gochecknoglobals
	"code":         colPrefix,
	"number block": colPrefix,
	"sabc de":      colPrefix,
	"sabcde":       colPrefix,
	"prefix":       colPrefix,

	"number length": colTotalLength,
	"total length":  colTotalLength,
	"length":        colTotalLength,

	"status": colStatus,

	"communications provider": colProvider,
	"provider":                colProvider,

	"sabc": colSABC,
	"de":   colDE,
}

// normalizeHeader lower-cases a header and collapses every run of
// punctuation or whitespace to a single space, so "Number_Length" and
// "Number Length " mean the same column.
func normalizeHeader(header string) string {
	fields := strings.FieldsFunc(strings.ToLower(header), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	return strings.Join(fields, " ")
}

type columnMap struct {
	prefix      int
	totalLength int
	status      int
	provider    int
	sabc        int
	de          int
}

func mapHeader(header []string) (columnMap, error) {
	cols := columnMap{prefix: -1, totalLength: -1, status: -1, provider: -1, sabc: -1, de: -1}

	for i, raw := range header {
		switch headerAliases[normalizeHeader(raw)] {
		case colPrefix:
			cols.prefix = i
		case colTotalLength:
			cols.totalLength = i
		case colStatus:
			cols.status = i
		case colProvider:
			cols.provider = i
		case colSABC:
			cols.sabc = i
		case colDE:
			cols.de = i
		}
	}

	if cols.prefix < 0 && (cols.sabc < 0 || cols.de < 0) {
		return columnMap{}, errors.New("no prefix column in header")
	}

	if cols.status < 0 {
		return columnMap{}, errors.New("no status column in header")
	}

	return cols, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}

	return record[i]
}

func (c columnMap) rule(record []string) (entity.AllocationRule, error) {
	var prefix string
	if c.prefix >= 0 {
		prefix = field(record, c.prefix)
	} else {
		// Older file revisions split the prefix over SABC and DE columns.
		prefix = field(record, c.sabc) + field(record, c.de)
	}

	prefix = strings.ReplaceAll(strings.TrimSpace(prefix), " ", "")
	if prefix == "" {
		return entity.AllocationRule{}, errors.New("empty prefix")
	}

	for _, r := range prefix {
		if r < '0' || r > '9' {
			return entity.AllocationRule{}, fmt.Errorf("prefix %q is not numeric", prefix)
		}
	}

	totalLength := len(prefix)

	if raw := strings.TrimSpace(field(record, c.totalLength)); raw != "" {
		var err error

		totalLength, err = strconv.Atoi(raw)
		if err != nil {
			return entity.AllocationRule{}, fmt.Errorf("total length %q is not a number", raw)
		}
	}

	if totalLength < len(prefix) {
		return entity.AllocationRule{}, fmt.Errorf("total length %d shorter than prefix %q", totalLength, prefix)
	}

	return entity.AllocationRule{
		Prefix:      prefix,
		TotalLength: totalLength,
		Status:      strings.TrimSpace(field(record, c.status)),
		Provider:    strings.TrimSpace(field(record, c.provider)),
	}, nil
}

// ParseFile reads one numbering-plan CSV document and returns its allocation
// rules in row order. Rows that fail validation are logged and skipped, and
// the skip count is returned so callers can alert on data quality.
func ParseFile(ctx context.Context, name string, r io.Reader) ([]entity.AllocationRule, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: read header: %w", name, err)
	}

	cols, err := mapHeader(header)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", name, err)
	}

	var (
		rules   []entity.AllocationRule
		skipped int
	)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, 0, fmt.Errorf("%s: read row: %w", name, err)
		}

		rule, err := cols.rule(record)
		if err != nil {
			skipped++

			logger(ctx).Warn(
				"skipping malformed row",
				slog.String("file", name),
				slog.Int("line", line),
				logx.Error(err),
			)

			continue
		}

		rules = append(rules, rule)
	}

	return rules, skipped, nil
}

// ParseFiles parses every downloaded document and flattens the results into
// one rule set, preserving file order then row order. Order matters: it is
// the classification tie-break for rules sharing a prefix.
func ParseFiles(ctx context.Context, files []File, policy numplan.StatusPolicy) ([]entity.AllocationRule, int, error) {
	var (
		rules   []entity.AllocationRule
		skipped int
	)

	for _, file := range files {
		fileRules, fileSkipped, err := ParseFile(ctx, file.Name, bytes.NewReader(file.Content))
		if err != nil {
			return nil, 0, err
		}

		rules = append(rules, fileRules...)
		skipped += fileSkipped
	}

	warnLiveDuplicates(ctx, rules, policy)

	return rules, skipped, nil
}

// warnLiveDuplicates flags prefixes that carry more than one live rule. The
// classifier resolves these deterministically, but they usually mean the
// upstream export glued two revisions together.
func warnLiveDuplicates(ctx context.Context, rules []entity.AllocationRule, policy numplan.StatusPolicy) {
	seen := make(map[string]int, len(rules))

	for _, rule := range rules {
		if policy.Dead(rule.Status) {
			continue
		}

		seen[rule.Prefix]++
	}

	for prefix, count := range seen {
		if count > 1 {
			logger(ctx).Warn(
				"duplicate live rules for prefix",
				slog.String("prefix", prefix),
				slog.Int("count", count),
			)
		}
	}
}
