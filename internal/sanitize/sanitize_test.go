package sanitize

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Margherita pizza", "Margherita pizza"},
		{"script stripped", `<script>alert('x')</script>Pizza`, "Pizza"},
		{"tags stripped, text kept", "<b>Spicy</b> salami", "Spicy salami"},
		{"img stripped", `<img src="x" onerror="alert(1)">Cola`, "Cola"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Fatalf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
