package app

import (
	"fmt"
	"strings"

	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/media"
)

// Page identifies which view is shown
type Page string

const (
	PageHome    Page = "home"
	PageResult  Page = "result"
	PageHistory Page = "history"
	PageGuide   Page = "guide"
)

// Pages lists the pages in navigation order
func Pages() []Page {
	return []Page{PageHome, PageResult, PageHistory, PageGuide}
}

// ParsePage parses a page name
func ParsePage(s string) (Page, error) {
	p := Page(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Pages() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid page: %s (must be one of: home, result, history, guide)", s)
}

// State is a point-in-time copy of the application state
type State struct {
	CurrentPage      Page
	SelectedImage    *media.Image
	PreviewURL       string
	IsAnalyzing      bool
	IsHistoryLoading bool
	CurrentResult    *common.AnalysisResult
	History          []common.AnalysisResult
}

// clone copies everything a reader could mutate
func (s State) clone() State {
	out := s
	if s.CurrentResult != nil {
		r := *s.CurrentResult
		out.CurrentResult = &r
	}
	out.History = make([]common.AnalysisResult, len(s.History))
	copy(out.History, s.History)
	return out
}
