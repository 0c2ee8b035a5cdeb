package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ka2n/ecdemo/cart"
	"github.com/ka2n/ecdemo/catalog"
	"github.com/ka2n/ecdemo/client"
	"github.com/ka2n/ecdemo/config"
	"github.com/ka2n/ecdemo/log"
	"github.com/morikuni/failure/v2"
	"github.com/spf13/cobra"
)

var (
	serverFlag string

	shopCmd = &cobra.Command{
		Use:   "shop",
		Short: "Browse the storefront in the terminal",
		Long: `Browse the product catalog and manage a cart in the terminal.

Every cart change is mirrored to the server (--server, ECDEMO_SERVER) in the
background. The shop keeps working when the server is unreachable.`,
		Args: cobra.NoArgs,
		RunE: runShop,
	}
)

func init() {
	shopCmd.Flags().StringVarP(&serverFlag, "server", "s", "", "Base URL of a running ecdemo server")
	rootCmd.AddCommand(shopCmd)
}

func runShop(cmd *cobra.Command, args []string) error {
	serverURL := config.Load().ServerURL
	if serverFlag != "" {
		serverURL = serverFlag
	}

	c := client.New(serverURL)
	m := newShopModel(c)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return failure.Wrap(err)
	}
	c.Wait()
	return nil
}

type shopView int

const (
	viewProducts shopView = iota
	viewCart
)

const noticeDuration = 2 * time.Second

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Add      key.Binding
	Inc      key.Binding
	Dec      key.Binding
	Remove   key.Binding
	Toggle   key.Binding
	Checkout key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Inc, k.Dec, k.Remove, k.Toggle, k.Checkout, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var shopKeys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Add:      key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "add to cart")),
	Inc:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more")),
	Dec:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "less")),
	Remove:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
	Toggle:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "products/cart")),
	Checkout: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "checkout")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// tracker receives fire-and-forget events; *client.Client implements it
type tracker interface {
	Status(ctx context.Context) (client.Status, error)
	DesignTokens(ctx context.Context) (map[string]any, error)
	CartChanged(items []cart.Item)
	Track(event string, data any)
}

type connectedMsg struct {
	tokens map[string]any
}

type standaloneMsg struct{}

type clearNoticeMsg struct{ seq int }

// shopModel is the terminal storefront
type shopModel struct {
	products []catalog.Product
	cart     *cart.Cart
	remote   tracker

	view      shopView
	cursor    int
	notice    string
	noticeSeq int
	connected bool

	accent lipgloss.Color
	help   help.Model
}

func newShopModel(remote tracker) *shopModel {
	return &shopModel{
		products: catalog.Products(),
		cart:     cart.New(remote.CartChanged),
		remote:   remote,
		accent:   lipgloss.Color("#667eea"),
		help:     help.New(),
	}
}

// Init checks the server connection and loads design tokens
func (m *shopModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
		defer cancel()
		st, err := m.remote.Status(ctx)
		if err != nil || !st.Connected {
			log.Debug("server not connected, running standalone", "error", err)
			return standaloneMsg{}
		}
		tokens, err := m.remote.DesignTokens(ctx)
		if err != nil {
			log.Debug("could not load design tokens", "error", err)
		}
		return connectedMsg{tokens: tokens}
	}
}

// Update handles user input and updates the model state
func (m *shopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case connectedMsg:
		m.connected = true
		m.applyDesignTokens(msg.tokens)
		return m, nil
	case standaloneMsg:
		m.connected = false
		return m, nil
	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *shopModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, shopKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, shopKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, shopKeys.Down):
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
	case key.Matches(msg, shopKeys.Toggle):
		if m.view == viewProducts {
			m.view = viewCart
		} else {
			m.view = viewProducts
		}
		m.cursor = 0
	case key.Matches(msg, shopKeys.Checkout):
		return m, m.checkout()
	case m.view == viewProducts && key.Matches(msg, shopKeys.Add):
		p := m.products[m.cursor]
		if _, err := m.cart.Add(p.ID); err != nil {
			return m, m.notify(failure.MessageOf(err).String())
		}
		return m, m.notify(fmt.Sprintf("%sをカートに追加しました", p.Name))
	case m.view == viewCart && key.Matches(msg, shopKeys.Inc):
		if id, ok := m.selectedCartItem(); ok {
			m.cart.UpdateQuantity(id, 1)
		}
	case m.view == viewCart && key.Matches(msg, shopKeys.Dec):
		if id, ok := m.selectedCartItem(); ok {
			m.cart.UpdateQuantity(id, -1)
			m.clampCursor()
		}
	case m.view == viewCart && key.Matches(msg, shopKeys.Remove):
		if id, ok := m.selectedCartItem(); ok {
			m.cart.Remove(id)
			m.clampCursor()
		}
	}
	return m, nil
}

func (m *shopModel) checkout() tea.Cmd {
	total, err := m.cart.Checkout()
	if err != nil {
		return m.notify(failure.MessageOf(err).String())
	}
	m.cursor = 0
	m.remote.Track("checkout", map[string]any{"total": total})
	return m.notify(fmt.Sprintf("ご購入ありがとうございます！合計: %s", formatYen(total)))
}

func (m *shopModel) notify(text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	seq := m.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

// applyDesignTokens picks up colors.primary as the accent color
func (m *shopModel) applyDesignTokens(tokens map[string]any) {
	colors, _ := tokens["colors"].(map[string]any)
	if primary, ok := colors["primary"].(string); ok && primary != "" {
		m.accent = lipgloss.Color(primary)
	}
}

func (m *shopModel) rows() int {
	if m.view == viewCart {
		return len(m.cart.Items())
	}
	return len(m.products)
}

func (m *shopModel) selectedCartItem() (int, bool) {
	items := m.cart.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return 0, false
	}
	return items[m.cursor].ID, true
}

func (m *shopModel) clampCursor() {
	if n := m.rows(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// View renders the current screen
func (m *shopModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.accent)
	selected := lipgloss.NewStyle().Foreground(m.accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	status := "standalone"
	if m.connected {
		status = "connected"
	}
	fmt.Fprintf(&b, "%s  %s\n\n",
		title.Render(fmt.Sprintf("🛍  EC Demo  ·  カート (%d)", m.cart.Count())),
		dim.Render(status),
	)

	switch m.view {
	case viewProducts:
		for i, p := range m.products {
			line := fmt.Sprintf("%s %-12s %10s  %s", p.Icon, p.Name, formatYen(p.Price), dim.Render(p.Description))
			b.WriteString(m.row(i, line, selected))
		}
	case viewCart:
		items := m.cart.Items()
		if len(items) == 0 {
			b.WriteString(dim.Render("カートは空です") + "\n")
		}
		for i, it := range items {
			line := fmt.Sprintf("%s %-12s %s × %d", it.Icon, it.Name, formatYen(it.Price), it.Quantity)
			b.WriteString(m.row(i, line, selected))
		}
		fmt.Fprintf(&b, "\n合計: %s\n", title.Render(formatYen(m.cart.Total())))
	}

	if m.notice != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(m.accent).Padding(0, 1).Render(m.notice) + "\n")
	}
	b.WriteString("\n" + m.help.View(shopKeys))
	return b.String()
}

func (m *shopModel) row(i int, line string, selected lipgloss.Style) string {
	if i == m.cursor {
		return selected.Render("> "+line) + "\n"
	}
	return "  " + line + "\n"
}
