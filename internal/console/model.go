// Package console is the operator's terminal billing desk.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/billing"
	"github.com/mamadbah2/milkbill/internal/domain/models"
	"github.com/mamadbah2/milkbill/internal/invoice"
	"github.com/mamadbah2/milkbill/internal/service/messaging"
	"github.com/mamadbah2/milkbill/internal/service/submission"
)

// Searcher looks customers up by name.
type Searcher interface {
	Search(ctx context.Context, term string) ([]models.Customer, error)
}

// Submitter launches the background writes of a bill.
type Submitter interface {
	Submit(ctx context.Context, bill billing.Bill) (*submission.Submission, error)
}

// Messenger prepares WhatsApp bills.
type Messenger interface {
	Prepare(bill billing.Bill) (messaging.Message, error)
}

// Renderer writes the PDF of a bill.
type Renderer interface {
	Render(w io.Writer, bill billing.Bill) error
}

// Deps are the services the console drives.
type Deps struct {
	Customers    Searcher
	Submissions  Submitter
	Messages     Messenger
	Invoices     Renderer
	Title        string
	PDFDir       string
	DefaultPrice float64
	Now          func() time.Time
	Logger       *zap.Logger
}

type mode int

const (
	modeCalendar mode = iota
	modeQuantity
	modePrice
	modeCustomer
	modeSearch
	modeAlert
)

const searchTimeout = 10 * time.Second

type searchResultMsg struct {
	term      string
	customers []models.Customer
	err       error
}

// Model is the bubbletea model of the billing desk.
type Model struct {
	deps Deps

	sheet  *billing.Sheet
	cursor int

	customerName string
	mobileNumber string
	price        float64

	mode        mode
	alert       string
	alertReturn mode
	editDate    string

	quantityInput textinput.Model
	priceInput    textinput.Model
	nameInput     textinput.Model
	phoneInput    textinput.Model
	searchInput   textinput.Model
	customerFocus int

	results    []models.Customer
	resultIdx  int
	lastSearch string
	searching  bool

	lastLink string
	lastPDF  string
}

// New builds a console positioned on today's month.
func New(deps Deps) *Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.PDFDir == "" {
		deps.PDFDir = "."
	}

	now := deps.Now()
	return &Model{
		deps:          deps,
		sheet:         billing.NewSheet(billing.MonthOf(now)),
		cursor:        now.Day(),
		price:         deps.DefaultPrice,
		quantityInput: newInput("liters", 8),
		priceInput:    newInput("price per liter", 10),
		nameInput:     newInput("customer name", 40),
		phoneInput:    newInput("10-digit mobile", 10),
		searchInput:   newInput("search by name", 40),
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = limit + 2
	return ti
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchResultMsg:
		return m, m.handleSearchResult(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAlert:
			return m, m.handleAlert(msg)
		case modeQuantity:
			return m, m.handleQuantity(msg)
		case modePrice:
			return m, m.handlePrice(msg)
		case modeCustomer:
			return m, m.handleCustomer(msg)
		case modeSearch:
			return m, m.handleSearch(msg)
		default:
			return m, m.handleCalendar(msg)
		}
	}
	return m, nil
}

func (m *Model) handleCalendar(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-7)
	case "down", "j":
		m.moveCursor(7)
	case " ", "space", "enter":
		m.toggleDay()
	case "n":
		m.sheet.NextMonth()
		m.clampCursor()
	case "p":
		m.sheet.PrevMonth()
		m.clampCursor()
	case "w":
		m.sheet.SetWholeMonth(!m.sheet.WholeMonth())
	case "r":
		m.priceInput.SetValue(strconv.FormatFloat(m.price, 'f', -1, 64))
		return m.open(modePrice, &m.priceInput)
	case "c":
		m.nameInput.SetValue(m.customerName)
		m.phoneInput.SetValue(m.mobileNumber)
		m.customerFocus = 0
		m.phoneInput.Blur()
		return m.open(modeCustomer, &m.nameInput)
	case "/":
		m.searchInput.SetValue("")
		m.results = nil
		m.resultIdx = 0
		m.lastSearch = ""
		return m.open(modeSearch, &m.searchInput)
	case "m":
		m.prepareWhatsApp()
	case "d":
		m.writePDF()
	case "s":
		m.submit()
	}
	return nil
}

func (m *Model) open(next mode, input *textinput.Model) tea.Cmd {
	m.mode = next
	input.CursorEnd()
	return input.Focus()
}

func (m *Model) closeModal() {
	m.quantityInput.Blur()
	m.priceInput.Blur()
	m.nameInput.Blur()
	m.phoneInput.Blur()
	m.searchInput.Blur()
	m.mode = modeCalendar
}

func (m *Model) showAlert(text string, returnTo mode) {
	m.alert = text
	m.alertReturn = returnTo
	m.mode = modeAlert
}

func (m *Model) handleAlert(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc", " ", "space":
		m.alert = ""
		m.mode = m.alertReturn
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 1 || next > m.sheet.Month().Days() {
		return
	}
	m.cursor = next
}

func (m *Model) clampCursor() {
	if days := m.sheet.Month().Days(); m.cursor > days {
		m.cursor = days
	}
	if m.cursor < 1 {
		m.cursor = 1
	}
}

func (m *Model) toggleDay() {
	date := m.sheet.Month().DateKey(m.cursor)
	quantity, existing := m.sheet.ToggleOrOpen(date)
	if !existing {
		return
	}
	m.editDate = date
	m.quantityInput.SetValue(billing.FormatLiters(quantity))
	m.mode = modeQuantity
	m.quantityInput.CursorEnd()
	m.quantityInput.Focus()
}

func (m *Model) handleQuantity(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return nil
	case "enter":
		if err := m.sheet.SetQuantityInput(m.editDate, m.quantityInput.Value()); err != nil {
			m.showAlert(models.AlertInvalidQuantity, modeQuantity)
			return nil
		}
		m.closeModal()
		return nil
	}

	var cmd tea.Cmd
	m.quantityInput, cmd = m.quantityInput.Update(msg)
	return cmd
}

func (m *Model) handlePrice(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return nil
	case "enter":
		price, err := strconv.ParseFloat(strings.TrimSpace(m.priceInput.Value()), 64)
		if err != nil || price < 0 {
			m.showAlert(models.AlertInvalidPrice, modePrice)
			return nil
		}
		m.price = price
		m.closeModal()
		return nil
	}

	var cmd tea.Cmd
	m.priceInput, cmd = m.priceInput.Update(msg)
	return cmd
}

func (m *Model) handleCustomer(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return nil
	case "tab", "shift+tab":
		if m.customerFocus == 0 {
			m.customerFocus = 1
			m.nameInput.Blur()
			return m.phoneInput.Focus()
		}
		m.customerFocus = 0
		m.phoneInput.Blur()
		return m.nameInput.Focus()
	case "enter":
		m.customerName = strings.TrimSpace(m.nameInput.Value())
		m.mobileNumber = strings.TrimSpace(m.phoneInput.Value())
		m.closeModal()
		return nil
	}

	var cmd tea.Cmd
	if m.customerFocus == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.phoneInput, cmd = m.phoneInput.Update(msg)
	}
	return cmd
}

func (m *Model) handleSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return nil
	case "up", "ctrl+p":
		if m.resultIdx > 0 {
			m.resultIdx--
		}
		return nil
	case "down", "ctrl+n":
		if m.resultIdx < len(m.results)-1 {
			m.resultIdx++
		}
		return nil
	case "enter":
		term := m.searchInput.Value()
		if len(m.results) > 0 && term == m.lastSearch {
			chosen := m.results[m.resultIdx]
			m.customerName = chosen.Name
			m.mobileNumber = chosen.MobileNumber
			m.closeModal()
			return nil
		}
		return m.runSearch(term)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return cmd
}

func (m *Model) runSearch(term string) tea.Cmd {
	if strings.TrimSpace(term) == "" {
		m.results = nil
		m.resultIdx = 0
		m.lastSearch = term
		return nil
	}

	m.searching = true
	searcher := m.deps.Customers
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		customers, err := searcher.Search(ctx, term)
		return searchResultMsg{term: term, customers: customers, err: err}
	}
}

func (m *Model) handleSearchResult(msg searchResultMsg) tea.Cmd {
	m.searching = false
	if m.mode != modeSearch {
		return nil
	}
	if msg.err != nil {
		m.deps.Logger.Error("error searching customers", zap.Error(msg.err))
		m.showAlert(models.AlertSearchFailed, modeSearch)
		return nil
	}
	m.results = msg.customers
	m.resultIdx = 0
	m.lastSearch = msg.term
	return nil
}

func (m *Model) bill() billing.Bill {
	return m.sheet.Bill(m.customerName, m.mobileNumber, m.price)
}

func (m *Model) prepareWhatsApp() {
	msg, err := m.deps.Messages.Prepare(m.bill())
	switch {
	case errors.Is(err, messaging.ErrInvalidPhone):
		m.showAlert(models.AlertInvalidPhone, modeCalendar)
	case errors.Is(err, messaging.ErrNoDeliveries):
		m.showAlert(models.AlertNoDaysForBill, modeCalendar)
	case err != nil:
		m.deps.Logger.Error("failed preparing whatsapp bill", zap.Error(err))
		m.showAlert(err.Error(), modeCalendar)
	default:
		m.lastLink = msg.URL
		m.showAlert("Open this link to send the bill on WhatsApp:\n\n"+msg.URL, modeCalendar)
	}
}

func (m *Model) writePDF() {
	bill := m.bill()
	if len(bill.Entries) == 0 {
		m.showAlert(models.AlertNoDaysForPDF, modeCalendar)
		return
	}

	path := filepath.Join(m.deps.PDFDir, invoice.FileName(bill.CustomerName, bill.Month))
	if err := m.renderTo(path, bill); err != nil {
		m.deps.Logger.Error("failed writing invoice", zap.String("path", path), zap.Error(err))
		m.showAlert(models.AlertInvoiceFailed, modeCalendar)
		return
	}

	m.lastPDF = path
	m.showAlert("Invoice saved to "+path, modeCalendar)
}

func (m *Model) renderTo(path string, bill billing.Bill) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return m.deps.Invoices.Render(f, bill)
}

func (m *Model) submit() {
	_, err := m.deps.Submissions.Submit(context.Background(), m.bill())
	switch {
	case errors.Is(err, submission.ErrInvalidMobile):
		m.showAlert(models.AlertInvalidCustomer, modeCalendar)
		return
	case errors.Is(err, submission.ErrMissingCustomer), errors.Is(err, submission.ErrNoDeliveries):
		m.showAlert(models.AlertMissingDetails, modeCalendar)
		return
	case err != nil:
		m.deps.Logger.Error("submission rejected", zap.Error(err))
		m.showAlert(err.Error(), modeCalendar)
		return
	}

	m.showAlert(models.AlertSubmitted, modeCalendar)
	m.resetForm()
}

func (m *Model) resetForm() {
	m.customerName = ""
	m.mobileNumber = ""
	m.price = m.deps.DefaultPrice
	m.sheet.Reset()
}

// Run starts the console in the terminal's alternate screen.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
