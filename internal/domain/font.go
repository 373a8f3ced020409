package domain

const (
	DefaultFontSize FontSize = 16
	MinFontSize     FontSize = 1
	FontSizeStep    FontSize = 1
)

// FontSize is the content scale in pixels. It has no upper bound.
type FontSize int

func (f FontSize) Increase() FontSize {
	return f + FontSizeStep
}

func (f FontSize) Decrease() FontSize {
	return max(f-FontSizeStep, MinFontSize)
}

func (f FontSize) Reset() FontSize {
	return DefaultFontSize
}

// Clamp lifts out-of-range values (e.g. from a query string) to the minimum.
func (f FontSize) Clamp() FontSize {
	return max(f, MinFontSize)
}
