package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"uk_numcheck/internal/domain/value"
)

func TestParseNationalNumber(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "National format with spaces",
			raw:  "020 8099 6910",
			want: "02080996910",
		},
		{
			name: "Punctuation stripped",
			raw:  "(0151) 496-0000",
			want: "01514960000",
		},
		{
			name: "Plus country code",
			raw:  "+44 20 7946 0000",
			want: "02079460000",
		},
		{
			name: "Double zero country code",
			raw:  "0044 20 7946 0000",
			want: "02079460000",
		},
		{
			name: "Country code without plus",
			raw:  "442079460000",
			want: "02079460000",
		},
		{
			name: "Country code followed by access digit",
			raw:  "+44 (0) 20 7946 0000",
			want: "02079460000",
		},
		{
			name: "Directory enquiries short code",
			raw:  "118 500",
			want: "118500",
		},
		{
			name: "Harmonised service short code",
			raw:  "116000",
			want: "116000",
		},
		{
			name: "Mobile",
			raw:  "07911 123456",
			want: "07911123456",
		},
		{
			name: "Zero run kept verbatim",
			raw:  "000",
			want: "000",
		},
		{
			name: "Country code form of a short code regains the access digit",
			raw:  "44116000",
			want: "0116000",
		},
		{
			name:    "Empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "Whitespace only",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "No digits at all",
			raw:     "call me maybe",
			wantErr: true,
		},
		{
			name:    "Bare plus country code",
			raw:     "+44",
			wantErr: true,
		},
		{
			name:    "Bare double zero country code",
			raw:     "0044",
			wantErr: true,
		},
		{
			name:    "Missing access digit",
			raw:     "20 7946 0000",
			wantErr: true,
		},
		{
			name:    "Missing access digit on a mobile",
			raw:     "7911123456",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			got, err := value.ParseNationalNumber(tc.raw)

			if tc.wantErr {
				rq.ErrorIs(err, value.ErrNotNational)
				rq.Empty(got.String())

				return
			}

			rq.NoError(err)
			rq.Equal(tc.want, got.String())
		})
	}
}

// Normalizing an already canonical number must be a no-op: whatever
// ParseNationalNumber produces, feeding it back in reproduces it exactly.
func TestParseNationalNumberIdempotent(t *testing.T) {
	rq := require.New(t)

	raws := []string{
		"020 8099 6910",
		"+44 20 7946 0000",
		"0044 151 496 0000",
		"118500",
		"07911 123456",
		"000",
	}

	for _, raw := range raws {
		canonical, err := value.ParseNationalNumber(raw)
		rq.NoError(err)

		again, err := value.ParseNationalNumber(canonical.String())
		rq.NoError(err)
		rq.Equal(canonical, again)
	}
}
