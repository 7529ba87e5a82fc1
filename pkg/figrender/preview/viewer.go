package preview

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultWidth = 80

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

// Viewer is a full-screen bubbletea model showing one image until dismissed.
type Viewer struct {
	img    image.Image
	title  string
	width  int
	height int

	// rendered caches the preview for the current window size.
	rendered string
	quitting bool
}

// NewViewer creates a viewer for img.
func NewViewer(img image.Image, title string) *Viewer {
	return &Viewer{img: img, title: title, width: defaultWidth}
}

// Run shows img on the alternate screen and blocks until the user quits.
func Run(img image.Image, title string) error {
	p := tea.NewProgram(NewViewer(img, title), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (v *Viewer) Init() tea.Cmd {
	return nil
}

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = m.Width, m.Height
		v.rendered = ""
	case tea.KeyMsg:
		switch m.String() {
		case "q", "esc", "ctrl+c":
			v.quitting = true
			return v, tea.Quit
		}
	}
	return v, nil
}

func (v *Viewer) View() string {
	if v.quitting {
		return ""
	}
	if v.rendered == "" {
		// Two lines go to the title and the help line.
		cols := fitColumns(v.img, v.width, v.height-2)
		v.rendered = Render(v.img, cols)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(v.title),
		v.rendered,
		helpStyle.Render("q / esc: close"),
	)
}
