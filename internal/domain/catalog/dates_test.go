package catalog

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC), "02 Jun, 2024"},
		{time.Date(2023, time.December, 25, 10, 30, 0, 0, time.UTC), "25 Dez, 2023"},
		{time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), "01 Fev, 2024"},
	}
	for _, tc := range cases {
		if got := FormatDate(tc.in); got != tc.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDatePortalFormat(t *testing.T) {
	got := ParseDate("15 Jun, 2024")
	want := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDate = %v, want %v", got, want)
	}
}

func TestParseDateTolerance(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		// Sem vírgula e com dia de um dígito.
		{"2 Jun 2024", time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)},
		// Abreviação inglesa de dados antigos.
		{"10 Dec, 2023", time.Date(2023, time.December, 10, 0, 0, 0, 0, time.UTC)},
		{"05 Feb, 2024", time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)},
		// ISO.
		{"2024-06-02", time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := ParseDate(tc.in); !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDateUnknownFormatsSinkToZero(t *testing.T) {
	for _, in := range []string{"", "  ", "amanhã", "15/06/2024", "Junho de 2024", "99 Jun, 2024"} {
		if got := ParseDate(in); !got.IsZero() {
			t.Errorf("ParseDate(%q) = %v, want zero", in, got)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	orig := time.Date(2024, time.October, 7, 0, 0, 0, 0, time.UTC)
	if got := ParseDate(FormatDate(orig)); !got.Equal(orig) {
		t.Fatalf("round trip = %v, want %v", got, orig)
	}
}
