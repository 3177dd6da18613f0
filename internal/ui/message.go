package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/artx/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSearchResult MsgKind = iota
	MsgProgressUpdate
	MsgBrowserOpened
)

// searchResultMsg is the constructor for [MsgSearchResult]
func searchResultMsg(res tasks.Result) Msg {
	return Msg{kind: MsgSearchResult, data: res}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

type browserResult struct {
	url string
	err error
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(url string, err error) Msg {
	return Msg{kind: MsgBrowserOpened, data: browserResult{url: url, err: err}}
}
