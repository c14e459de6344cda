package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mamadbah2/milkbill/internal/billing"
	"github.com/mamadbah2/milkbill/internal/invoice"
)

const cellWidth = 8

var weekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#16A34A")).Padding(0, 1)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	headerStyle    = lipgloss.NewStyle().Width(cellWidth).Bold(true).Foreground(lipgloss.Color("#9CA3AF"))
	cellStyle      = lipgloss.NewStyle().Width(cellWidth)
	deliveredStyle = cellStyle.Foreground(lipgloss.Color("#16A34A")).Bold(true)
	cursorStyle    = cellStyle.Reverse(true)
	totalsStyle    = lipgloss.NewStyle().Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#16A34A")).Padding(1, 2)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")).Bold(true)
)

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{m.headerView(), m.calendarView(), m.totalsView()}

	if overlay := m.modalView(); overlay != "" {
		sections = append(sections, modalStyle.Render(overlay))
	} else {
		sections = append(sections, helpStyle.Render(calendarHelp))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

const calendarHelp = "←↓↑→ move • space toggle/edit • n/p month • w whole month • r rate • c customer • / search\n" +
	"m whatsapp • d pdf • s submit • q quit"

func (m *Model) headerView() string {
	title := m.deps.Title
	if title == "" {
		title = "Milk Bill"
	}
	month := m.sheet.Month().Label()
	if m.sheet.WholeMonth() {
		month += " (whole month)"
	}

	customer := m.customerName
	if customer == "" {
		customer = "-"
	}
	if m.mobileNumber != "" {
		customer += " (" + m.mobileNumber + ")"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title)+"  "+month,
		labelStyle.Render("Customer: ")+customer+"   "+labelStyle.Render("Rate: ")+fmt.Sprintf("₹%.2f/L", m.price),
		"",
	)
}

func (m *Model) calendarView() string {
	cells, rows := invoice.Layout(m.sheet.Month(), m.sheet.Entries())

	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, 7)
		for c := range grid[r] {
			grid[r][c] = cellStyle.Render("")
		}
	}

	for _, cell := range cells {
		label := fmt.Sprintf("%2d", cell.Day)
		style := cellStyle
		if cell.Delivered() {
			label += " " + billing.FormatLiters(cell.Quantity) + "L"
			style = deliveredStyle
		}
		if cell.Day == m.cursor {
			style = cursorStyle
		}
		grid[cell.Row][cell.Col] = style.Render(label)
	}

	headers := make([]string, len(weekdayHeaders))
	for i, h := range weekdayHeaders {
		headers[i] = headerStyle.Render(h)
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, headers...)}
	for _, row := range grid {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m *Model) totalsView() string {
	totals := m.sheet.Totals(m.price)
	return totalsStyle.Render(fmt.Sprintf("Days: %d   Total Milk: %.2f L   Amount: ₹%.2f", totals.Days, totals.Quantity, totals.Amount)) + "\n"
}

func (m *Model) modalView() string {
	switch m.mode {
	case modeQuantity:
		return fmt.Sprintf("Quantity for %s (liters, 0 removes)\n\n%s\n\n%s",
			m.editDate, m.quantityInput.View(), helpStyle.Render("enter save • esc cancel"))
	case modePrice:
		return fmt.Sprintf("Price per liter\n\n%s\n\n%s",
			m.priceInput.View(), helpStyle.Render("enter save • esc cancel"))
	case modeCustomer:
		return fmt.Sprintf("Customer details\n\nName:   %s\nMobile: %s\n\n%s",
			m.nameInput.View(), m.phoneInput.View(), helpStyle.Render("tab switch field • enter save • esc cancel"))
	case modeSearch:
		return m.searchView()
	case modeAlert:
		return m.alert + "\n\n" + helpStyle.Render("enter ok")
	}
	return ""
}

func (m *Model) searchView() string {
	var b strings.Builder
	b.WriteString("Search customers\n\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(labelStyle.Render("Searching..."))
	case len(m.results) == 0 && m.lastSearch != "":
		b.WriteString(labelStyle.Render("No customers found"))
	default:
		for i, c := range m.results {
			line := fmt.Sprintf("%s (%s)", c.Name, c.MobileNumber)
			if i == m.resultIdx {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter search/select • ↑↓ choose • esc close"))
	return b.String()
}
