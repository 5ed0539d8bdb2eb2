package port

//go:generate mockgen -source=font_detector.go -destination=mocks/mock_font_detector.go -package=mocks

import "context"

// FontDetector lists the font families installed on the system.
type FontDetector interface {
	// AvailableFonts returns installed font family names sorted by name.
	// Returns an error if font detection is not available (e.g., fc-list missing).
	AvailableFonts(ctx context.Context) ([]string, error)

	// IsAvailable returns true if font detection is available on this system.
	IsAvailable(ctx context.Context) bool
}
