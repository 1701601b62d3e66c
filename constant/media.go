package constant

// MediaExtensions are the file extensions offered by the source pickers.
// They are hints only: whatever mpv can open is accepted.
var MediaExtensions = []string{
	".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv",
	".m3u8", ".ts",
	".mp3", ".wav", ".aac",
}
