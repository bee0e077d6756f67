package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey is the key of one day's layout document.
	LayoutKey(dayHash string, opts LayoutKeyOpts) string
	// GraphKey is the key of one day's rendered overlap graph.
	GraphKey(dayHash string, format string) string
}

// LayoutKeyOpts lists every option that changes a layout result.
type LayoutKeyOpts struct {
	MaxBreak       int    `json:"max_break"`
	Mode           string `json:"mode"`
	DayStart       int    `json:"day_start"`
	DayEnd         int    `json:"day_end"`
	Width          int    `json:"width"`
	MinColumnWidth int    `json:"min_column_width"`
	Gap            int    `json:"gap"`
	MaxColumns     int    `json:"max_columns"`
	CollapseBelow  int    `json:"collapse_below"`
	ExpandAbove    int    `json:"expand_above"`
}

// DefaultKeyer produces "layout:<sha256>" and "graph:<format>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(dayHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", dayHash, opts)
}

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(dayHash string, format string) string {
	return hashKey(fmt.Sprintf("graph:%s", format), dayHash)
}
