package resolve

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Daft Punk", "Daft_Punk"},
		{"  leading and   trailing  ", "leading_and_trailing"},
		{"tab\tand\nnewline", "tab_and_newline"},
		{"AC/DC", "AC%2FDC"},
		{"Sigur Rós", "Sigur_R%C3%B3s"},
		{"keep-._~", "keep-._~"},
		{"100% (live)", "100%25_%28live%29"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLocalURIPreservesCase(t *testing.T) {
	if got := LocalURI("http://ernes7a.lt/sws/", "MiXeD Case"); got != "http://ernes7a.lt/sws/MiXeD_Case" {
		t.Fatalf("unexpected uri %q", got)
	}
}
