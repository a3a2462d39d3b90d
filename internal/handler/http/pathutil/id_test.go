package pathutil

import "testing"

func TestExtractID(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		prefix  string
		want    string
		wantErr bool
	}{
		{"numeric id", "/articles/41", "/articles/", "41", false},
		{"opaque id", "/articles/a1b2c3", "/articles/", "a1b2c3", false},
		{"empty segment", "/articles/", "/articles/", "", true},
		{"nested path", "/articles/41/comments", "/articles/", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractID(tt.path, tt.prefix)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractID(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractID(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
