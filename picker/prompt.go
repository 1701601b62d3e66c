package picker

import (
	"errors"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/reelplay/reelplay/log"
	"github.com/reelplay/reelplay/query"
	"github.com/reelplay/reelplay/transport"
	"github.com/samber/mo"
)

var none = mo.None[transport.Source]()

// ask runs a survey prompt. An interrupt counts as backing out.
func ask(prompt survey.Prompt, response any, opts ...survey.AskOpt) (bool, error) {
	err := survey.AskOne(prompt, response, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return false, nil
	}
	return err == nil, err
}

// FilePrompt asks for a media file path with tab completion.
type FilePrompt struct{}

func (FilePrompt) Choose() (mo.Option[transport.Source], error) {
	var path string
	ok, err := ask(&survey.Input{
		Message: "Media file:",
		Help:    "Path to a local media file. Press tab to complete.",
		Suggest: Complete,
	}, &path)
	if !ok || err != nil {
		return none, err
	}

	return Accept(path), nil
}

// FolderPrompt asks for a directory and then for one of the media files inside it.
type FolderPrompt struct {
	// Opened is told the name of the chosen folder, before a file is picked from it.
	Opened func(name string)
}

func (f FolderPrompt) Choose() (mo.Option[transport.Source], error) {
	var dir string
	ok, err := ask(&survey.Input{
		Message: "Folder:",
		Default: ".",
		Suggest: Complete,
	}, &dir)
	if !ok || err != nil {
		return none, err
	}

	files, err := MediaFiles(dir)
	if err != nil {
		return none, err
	}

	if f.Opened != nil {
		f.Opened(filepath.Base(filepath.Clean(dir)))
	}

	if len(files) == 0 {
		log.Infof("no media files in %s", dir)
		return none, nil
	}

	names := make([]string, len(files))
	for i, file := range files {
		names[i] = filepath.Base(file)
	}

	var index int
	ok, err = ask(&survey.Select{
		Message: "Media file:",
		Options: names,
	}, &index, survey.WithFilter(func(filter, value string, _ int) bool {
		return fuzzy.MatchFold(filter, value)
	}))
	if !ok || err != nil {
		return none, err
	}

	return Accept(files[index]), nil
}

// URLPrompt asks for a URL, suggesting previously opened ones.
type URLPrompt struct{}

func (URLPrompt) Choose() (mo.Option[transport.Source], error) {
	var url string
	ok, err := ask(&survey.Input{
		Message: "URL:",
		Help:    "http(s), rtmp or rtsp stream. Press tab for previously opened URLs.",
		Suggest: query.SuggestMany,
	}, &url)
	if !ok || err != nil {
		return none, err
	}

	source := Accept(url)
	if s, ok := source.Get(); ok {
		if err := query.Remember(s.Locator, 1); err != nil {
			log.Warnf("remembering %s: %v", s.Locator, err)
		}
	}

	return source, nil
}
