package tui

type state int

const (
	playerState state = iota
	fileState
	folderState
	folderFilesState
	urlState
	historyState
	errorState
)
