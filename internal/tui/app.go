package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arcanaland/shuffler/internal/confirm"
	"github.com/arcanaland/shuffler/internal/render"
	"github.com/arcanaland/shuffler/internal/session"
)

// Options configures the App
type Options struct {
	Size     render.Size
	Password string
	// Attempts closes the modal after this many wrong passwords; 0 is unlimited
	Attempts int
}

// shuffleModal is the password prompt shown before a reshuffle
type shuffleModal struct {
	open     bool
	input    string
	err      string
	failures int
}

func (m *shuffleModal) reset() {
	m.open = false
	m.input = ""
	m.err = ""
	m.failures = 0
}

// App is the root Bubbletea model.
type App struct {
	ctrl   *session.Controller
	opts   Options
	modal  shuffleModal
	notice string
	width  int
	height int
}

// New creates the TUI for an initialized controller.
func New(ctrl *session.Controller, opts Options) App {
	if opts.Password == "" {
		opts.Password = "SHUFFLE"
	}
	return App{ctrl: ctrl, opts: opts}
}

// Run starts the program in the alternate screen and blocks until it exits.
func Run(ctrl *session.Controller, opts Options) error {
	_, err := tea.NewProgram(New(ctrl, opts), tea.WithAltScreen()).Run()
	return err
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if a.modal.open {
			return a.updateModal(msg)
		}

		a.notice = ""
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "n", " ", "right", "l":
			a.ctrl.Advance()
		case "p", "left", "h":
			a.ctrl.GoBack()
		case "s":
			a.modal.open = true
		}
	}

	return a, nil
}

func (a App) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.modal.reset()
	case tea.KeyEnter:
		if confirm.Check(a.modal.input, a.opts.Password) {
			a.modal.reset()
			a.ctrl.Reshuffle()
		} else {
			a.modal.failures++
			if a.opts.Attempts > 0 && a.modal.failures >= a.opts.Attempts {
				a.modal.reset()
				a.notice = "Too many incorrect attempts. Shuffle cancelled."
				break
			}
			a.modal.input = ""
			a.modal.err = "Incorrect password. Please try again."
		}
	case tea.KeyBackspace:
		if r := []rune(a.modal.input); len(r) > 0 {
			a.modal.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		a.modal.input += " "
		a.modal.err = ""
	case tea.KeyRunes:
		a.modal.input += string(msg.Runes)
		a.modal.err = ""
	}
	return a, nil
}

func (a App) View() string {
	if a.modal.open {
		return a.place(a.modalView())
	}

	st := a.ctrl.State()

	deckCol := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Deck"),
		"",
		render.Stack(len(st.Deck), a.opts.Size),
		"",
		dimStyle.Render(fmt.Sprintf("%d cards remaining", len(st.Deck))),
	)

	var opened string
	if cur, ok := st.Current(); ok {
		opened = render.Card(&cur, a.opts.Size, false)
	} else {
		opened = render.Empty(a.opts.Size, "No card opened")
	}
	var position string
	if len(st.History) > 0 {
		position = fmt.Sprintf("Card %d of %d", st.Cursor+1, len(st.History))
	}
	openedCol := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Opened Card"),
		"",
		opened,
		"",
		dimStyle.Render(position),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, deckCol, "      ", openedCol)
	parts := []string{body, "", footerStyle.Render(a.helpView())}
	if a.notice != "" {
		parts = append(parts, errorStyle.Render(a.notice))
	}
	return a.place(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func (a App) helpView() string {
	item := func(key, label string, enabled bool, style lipgloss.Style) string {
		if !enabled {
			return disabledStyle.Render(fmt.Sprintf("[%s] %s", key, label))
		}
		return style.Render("["+key+"]") + " " + label
	}

	return strings.Join([]string{
		item("p", "Previous Card", a.ctrl.CanGoBack(), keyStyle),
		item("n", "Next Card", a.ctrl.CanAdvance(), keyStyle),
		item("s", "Shuffle", true, dangerKeyStyle),
		item("q", "Quit", true, dimStyle),
	}, "   ")
}

func (a App) modalView() string {
	masked := strings.Repeat("•", len([]rune(a.modal.input)))
	if masked == "" {
		masked = dimStyle.Render("Enter password")
	}

	lines := []string{
		titleStyle.Render("Confirm Shuffle"),
		"",
		dimStyle.Render("Enter the password to shuffle the deck:"),
		"",
		"> " + masked,
	}
	if a.modal.err != "" {
		lines = append(lines, errorStyle.Render(a.modal.err))
	}
	lines = append(lines, "",
		keyStyle.Render("[esc]")+" Cancel   "+dangerKeyStyle.Render("[enter]")+" Shuffle")

	return modalStyle.Render(strings.Join(lines, "\n"))
}

// place centers content in the window once its size is known
func (a App) place(content string) string {
	if a.width == 0 || a.height == 0 {
		return content
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}
