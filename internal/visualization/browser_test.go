package visualization

import (
	"path/filepath"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	tests := []struct {
		goos    string
		wantBin string
		wantErr bool
	}{
		{"linux", "xdg-open", false},
		{"freebsd", "xdg-open", false},
		{"darwin", "open", false},
		{"windows", "rundll32", false},
		{"plan9", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := browserCommand(tt.goos, "http://localhost:1234")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unsupported platform")
				}
				return
			}
			if err != nil {
				t.Fatalf("browserCommand: %v", err)
			}
			if got := filepath.Base(cmd.Args[0]); got != tt.wantBin {
				t.Errorf("binary = %q, want %q", got, tt.wantBin)
			}
			if last := cmd.Args[len(cmd.Args)-1]; last != "http://localhost:1234" {
				t.Errorf("last arg = %q, want the URL", last)
			}
		})
	}
}
