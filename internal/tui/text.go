package tui

const (
	TextTitle   = "Daily Murli"
	TextLoading = "Loading..."
	TextFooter  = "←/→ day | t today | l language | + - 0 font | d download | ↑/↓ scroll | q quit"
)
