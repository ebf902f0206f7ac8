package banner

import (
	"github.com/charmbracelet/lipgloss"
)

var colorBanner = lipgloss.Color("39")

func GetString() string {
	renderer := lipgloss.DefaultRenderer()

	style := renderer.NewStyle().
		Foreground(colorBanner).
		Bold(true)

	ascii := `
            _      _               _
   _ __ ___| | ___| |__   ___  ___| | __
  | '__/ _ \ |/ __| '_ \ / _ \/ __| |/ /
  | | |  __/ | (__| | | |  __/ (__|   <
  |_|  \___|_|\___|_| |_|\___|\___|_|\_\`

	return "\n" + style.Render(ascii) + "\n"
}
