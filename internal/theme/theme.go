// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/tide-ime/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme is a named set of styles for the playground.
type Theme struct {
	Name   string
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name, falling back to the part before the
// first dot and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}
	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// DevComfortDark is the default playground theme.
var DevComfortDark Theme

func init() {
	dcBackground := tcell.NewHexColor(0x2a2f38)
	dcForeground := tcell.NewHexColor(0xc5cdd9)
	dcComment := tcell.NewHexColor(0x5c6370)
	dcYellow := tcell.NewHexColor(0xe5c07b)
	dcGreen := tcell.NewHexColor(0x98c379)
	dcBlue := tcell.NewHexColor(0x61afef)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)

	DevComfortDark = Theme{
		Name: "DevComfort Dark",
		Styles: map[string]tcell.Style{
			"Default":   baseStyle,
			"Selection": baseStyle.Reverse(true),
			"Label":     baseStyle.Foreground(dcComment).Italic(true),
			"Gutter":    baseStyle.Foreground(dcComment),

			// The simulated native field
			"Field":             tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground),
			"Field.Selection":   tcell.StyleDefault.Background(dcBlue).Foreground(tcell.ColorBlack),
			"Field.Composition": tcell.StyleDefault.Background(dcBackground).Foreground(dcYellow).Underline(true),

			"StatusBar":        tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground),
			"StatusBar.Edit":   tcell.StyleDefault.Background(dcBackground).Foreground(dcGreen),
			"StatusBarMessage": tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground).Bold(true),
		},
	}
}
