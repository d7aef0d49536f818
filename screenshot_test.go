package tilewalk

import "testing"

func TestScreenshotName(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"simple", "simple"},
		{"with spaces", "with_spaces"},
		{"path/to/file", "path_to_file"},
		{"v1.2-final", "v1.2-final"},
		{"  ", "unlabeled"},
		{"ça", "_a"},
	}
	for _, tt := range tests {
		if got := screenshotName(tt.input); got != tt.want {
			t.Errorf("screenshotName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	s := newTestSurface(t, 64, 64)
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want screenshots", s.ScreenshotDir)
	}
	s.Screenshot("a")
	s.Screenshot("b")
	if len(s.screenshotQueue) != 2 {
		t.Errorf("queue = %d, want 2", len(s.screenshotQueue))
	}
}
