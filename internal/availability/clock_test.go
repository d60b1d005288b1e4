package availability

import "testing"

func TestNormalizeClock(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:00", want: "09:00"},
		{in: "23:59", want: "23:59"},
		{in: "00:00", want: "00:00"},
		{in: "09:00:30", want: "09:00"}, // trailing seconds stripped
		{in: "9:00", wantErr: true},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "09-00", wantErr: true},
		{in: "", wantErr: true},
		{in: "09:00:3", wantErr: true},
	}

	for _, tc := range cases {
		got, err := NormalizeClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("NormalizeClock(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NormalizeClock(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeClock(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
