package ofcom_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"uk_numcheck/internal/domain/entity"
	"uk_numcheck/internal/domain/service/numplan"
	"uk_numcheck/internal/infrastructure/ofcom"
	"uk_numcheck/pkg/contextx"
)

func TestParseFileHeaderVariants(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  entity.AllocationRule
	}{
		{
			name:  "Current column names",
			input: "Code,Number Length,Status,Communications Provider\n01514 96,10,Allocated,Merseyside Telecom\n",
			want: entity.AllocationRule{
				Prefix:      "0151496",
				TotalLength: 10,
				Status:      "Allocated",
				Provider:    "Merseyside Telecom",
			},
		},
		{
			name:  "Number block and short provider header",
			input: "Number Block,Length,Status,Provider\n02080,11,Allocated,Example Telco\n",
			want: entity.AllocationRule{
				Prefix:      "02080",
				TotalLength: 11,
				Status:      "Allocated",
				Provider:    "Example Telco",
			},
		},
		{
			name:  "Split SABC and DE columns without a length",
			input: "SABC,DE,Status,Communications Provider\n0151,496,Allocated,Merseyside Telecom\n",
			want: entity.AllocationRule{
				Prefix:      "0151496",
				TotalLength: 7,
				Status:      "Allocated",
				Provider:    "Merseyside Telecom",
			},
		},
		{
			name:  "Underscored and upper-cased headers",
			input: "Prefix,Total_Length,STATUS,Provider\n0800,11,Protected,\n",
			want: entity.AllocationRule{
				Prefix:      "0800",
				TotalLength: 11,
				Status:      "Protected",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			rules, skipped, err := ofcom.ParseFile(context.Background(), "test.csv", strings.NewReader(tc.input))
			rq.NoError(err)
			rq.Zero(skipped)
			rq.Len(rules, 1)
			rq.Equal(tc.want, rules[0])
		})
	}
}

func TestParseFileSkipsMalformedRows(t *testing.T) {
	rq := require.New(t)

	input := strings.Join([]string{
		"Code,Number Length,Status,Communications Provider",
		"0151 496,10,Allocated,Merseyside Telecom",
		"01ABC,10,Allocated,Broken Co",
		",10,Free,",
		"0151497,3,Allocated,Short Length Co",
		"0151498,ten,Allocated,Word Length Co",
		"118500,,Allocated,Directory Co",
	}, "\n")

	rules, skipped, err := ofcom.ParseFile(context.Background(), "sabcde11.csv", strings.NewReader(input))
	rq.NoError(err)
	rq.Equal(4, skipped)
	rq.Len(rules, 2)

	rq.Equal("0151496", rules[0].Prefix)
	rq.Equal(entity.AllocationRule{
		Prefix:      "118500",
		TotalLength: 6,
		Status:      "Allocated",
		Provider:    "Directory Co",
	}, rules[1])
}

func TestParseFileHeaderErrors(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "No prefix column",
			input:   "Number Length,Status,Provider\n10,Allocated,X\n",
			wantErr: "no prefix column",
		},
		{
			name:    "SABC without DE",
			input:   "SABC,Status,Provider\n0151,Allocated,X\n",
			wantErr: "no prefix column",
		},
		{
			name:    "No status column",
			input:   "Code,Number Length,Provider\n0151,10,X\n",
			wantErr: "no status column",
		},
		{
			name:    "Empty document",
			input:   "",
			wantErr: "read header",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			_, _, err := ofcom.ParseFile(context.Background(), "broken.csv", strings.NewReader(tc.input))
			rq.Error(err)
			rq.Contains(err.Error(), tc.wantErr)
		})
	}
}

func TestParseFilesPreservesFileOrder(t *testing.T) {
	rq := require.New(t)

	files := []ofcom.File{
		{
			Name:    "sabcde11.csv",
			Content: []byte("Code,Number Length,Status,Communications Provider\n0151,11,Allocated,A Co\n"),
		},
		{
			Name:    "sabcde2.csv",
			Content: []byte("Code,Number Length,Status,Communications Provider\n0208,10,Allocated,B Co\n0151,11,Allocated,C Co\n"),
		},
	}

	rules, skipped, err := ofcom.ParseFiles(context.Background(), files, numplan.CurrentStatusPolicy())
	rq.NoError(err)
	rq.Zero(skipped)
	rq.Len(rules, 3)

	providers := []string{rules[0].Provider, rules[1].Provider, rules[2].Provider}
	rq.Equal([]string{"A Co", "B Co", "C Co"}, providers)
}

func TestParseFilesWarnsOnLiveDuplicates(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer
	ctx := contextx.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	files := []ofcom.File{{
		Name: "sabcde11.csv",
		Content: []byte(strings.Join([]string{
			"Code,Number Length,Status,Communications Provider",
			"0151,11,Allocated,A Co",
			"0151,11,Allocated,B Co",
			"0208,11,Free,",
			"0208,11,Free for allocation,",
		}, "\n")),
	}}

	rules, _, err := ofcom.ParseFiles(ctx, files, numplan.CurrentStatusPolicy())
	rq.NoError(err)
	rq.Len(rules, 4)

	rq.Contains(buf.String(), "duplicate live rules")
	rq.Contains(buf.String(), "prefix=0151")
	rq.NotContains(buf.String(), "prefix=0208")
}

func TestParseFilesBubblesHeaderErrors(t *testing.T) {
	rq := require.New(t)

	files := []ofcom.File{
		{Name: "good.csv", Content: []byte("Code,Status\n0151,Allocated\n")},
		{Name: "bad.csv", Content: []byte("Nothing,Useful\nhere,either\n")},
	}

	_, _, err := ofcom.ParseFiles(context.Background(), files, numplan.CurrentStatusPolicy())
	rq.Error(err)
	rq.Contains(err.Error(), "bad.csv")
}
