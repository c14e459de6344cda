package console

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/milkbill/internal/billing"
	"github.com/mamadbah2/milkbill/internal/domain/models"
	"github.com/mamadbah2/milkbill/internal/service/messaging"
	"github.com/mamadbah2/milkbill/internal/service/submission"
)

type fakeSearcher struct {
	terms     []string
	customers []models.Customer
	err       error
}

func (f *fakeSearcher) Search(_ context.Context, term string) ([]models.Customer, error) {
	f.terms = append(f.terms, term)
	return f.customers, f.err
}

type fakeSubmitter struct {
	bills []billing.Bill
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, bill billing.Bill) (*submission.Submission, error) {
	f.bills = append(f.bills, bill)
	if f.err != nil {
		return nil, f.err
	}
	return &submission.Submission{}, nil
}

type fakeMessenger struct {
	msg messaging.Message
	err error
}

func (f *fakeMessenger) Prepare(billing.Bill) (messaging.Message, error) {
	return f.msg, f.err
}

type fakeRenderer struct {
	bills []billing.Bill
}

func (f *fakeRenderer) Render(w io.Writer, bill billing.Bill) error {
	f.bills = append(f.bills, bill)
	_, err := io.WriteString(w, "%PDF-1.3")
	return err
}

type fixture struct {
	model     *Model
	searcher  *fakeSearcher
	submitter *fakeSubmitter
	messenger *fakeMessenger
	renderer  *fakeRenderer
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	f := &fixture{
		searcher:  &fakeSearcher{},
		submitter: &fakeSubmitter{},
		messenger: &fakeMessenger{},
		renderer:  &fakeRenderer{},
	}
	f.model = New(Deps{
		Customers:    f.searcher,
		Submissions:  f.submitter,
		Messages:     f.messenger,
		Invoices:     f.renderer,
		PDFDir:       t.TempDir(),
		DefaultPrice: 60,
		Now:          func() time.Time { return now },
	})
	return f
}

var march5 = time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

func key(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewStartsOnToday(t *testing.T) {
	f := newFixture(t, march5)

	assert.Equal(t, billing.Month{Year: 2024, Month: time.March}, f.model.sheet.Month())
	assert.Equal(t, 5, f.model.cursor)
	assert.Equal(t, 60.0, f.model.price)
	assert.Equal(t, modeCalendar, f.model.mode)
}

func TestCursorMovementStaysInsideMonth(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	m := f.model

	press(m, "left", "up")
	assert.Equal(t, 1, m.cursor)

	press(m, "right", "down")
	assert.Equal(t, 9, m.cursor)

	press(m, "l", "j", "j", "j")
	assert.Equal(t, 31, m.cursor)

	press(m, "down", "right")
	assert.Equal(t, 31, m.cursor)
}

func TestToggleAddsDefaultDelivery(t *testing.T) {
	f := newFixture(t, march5)

	press(f.model, "space")

	q, ok := f.model.sheet.Quantity("2024-03-05")
	require.True(t, ok)
	assert.Equal(t, 1.0, q)
	assert.Equal(t, modeCalendar, f.model.mode)
}

func TestToggleExistingOpensQuantityEditor(t *testing.T) {
	f := newFixture(t, march5)
	m := f.model

	press(m, "space", "enter")
	require.Equal(t, modeQuantity, m.mode)
	assert.Equal(t, "2024-03-05", m.editDate)
	assert.Equal(t, "1", m.quantityInput.Value())

	m.quantityInput.SetValue("2.5")
	press(m, "enter")

	q, _ := m.sheet.Quantity("2024-03-05")
	assert.Equal(t, 2.5, q)
	assert.Equal(t, modeCalendar, m.mode)
}

func TestQuantityEditorRejectsNonNumericInput(t *testing.T) {
	f := newFixture(t, march5)
	m := f.model

	press(m, "space", "space")
	m.quantityInput.SetValue("two")
	press(m, "enter")

	assert.Equal(t, modeAlert, m.mode)
	assert.Equal(t, models.AlertInvalidQuantity, m.alert)
	q, ok := m.sheet.Quantity("2024-03-05")
	require.True(t, ok)
	assert.Equal(t, 1.0, q)

	press(m, "enter")
	assert.Equal(t, modeQuantity, m.mode)
}

func TestQuantityZeroRemovesEntry(t *testing.T) {
	f := newFixture(t, march5)
	m := f.model

	press(m, "space", "space")
	m.quantityInput.SetValue("0")
	press(m, "enter")

	_, ok := m.sheet.Quantity("2024-03-05")
	assert.False(t, ok)
}

func TestQuantityEscapeKeepsEntry(t *testing.T) {
	f := newFixture(t, march5)
	m := f.model

	press(m, "space", "space")
	m.quantityInput.SetValue("9")
	press(m, "esc")

	q, _ := m.sheet.Quantity("2024-03-05")
	assert.Equal(t, 1.0, q)
	assert.Equal(t, modeCalendar, m.mode)
}

func TestMonthNavigationResetsSheet(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC))
	m := f.model

	press(m, "space", "n")

	assert.Equal(t, billing.Month{Year: 2024, Month: time.February}, m.sheet.Month())
	assert.Equal(t, 29, m.cursor)
	assert.Zero(t, m.sheet.Len())

	press(m, "p", "p")
	assert.Equal(t, billing.Month{Year: 2023, Month: time.December}, m.sheet.Month())
}

func TestWholeMonthToggle(t *testing.T) {
	f := newFixture(t, march5)
	m := f.model

	press(m, "w")
	assert.True(t, m.sheet.WholeMonth())
	assert.Equal(t, 31, m.sheet.Len())

	press(m, "w")
	assert.False(t, m.sheet.WholeMonth())
	assert.Zero(t, m.sheet.Len())
}

func TestPriceEditor(t *testing.T) {
	f := newFixture(t, march5)
	m := f.model

	press(m, "r")
	require.Equal(t, modePrice, m.mode)
	assert.Equal(t, "60", m.priceInput.Value())

	m.priceInput.SetValue("-4")
	press(m, "enter")
	assert.Equal(t, models.AlertInvalidPrice, m.alert)
	press(m, "enter")
	require.Equal(t, modePrice, m.mode)

	m.priceInput.SetValue("55.5")
	press(m, "enter")
	assert.Equal(t, 55.5, m.price)
	assert.Equal(t, modeCalendar, m.mode)
}

func TestCustomerEditor(t *testing.T) {
	f := newFixture(t, march5)
	m := f.model

	press(m, "c")
	require.Equal(t, modeCustomer, m.mode)
	typeText(m, "Asha")
	press(m, "tab")
	typeText(m, "9876543210")
	press(m, "enter")

	assert.Equal(t, "Asha", m.customerName)
	assert.Equal(t, "9876543210", m.mobileNumber)
	assert.Equal(t, modeCalendar, m.mode)
}

func TestSearchThenSelect(t *testing.T) {
	f := newFixture(t, march5)
	f.searcher.customers = []models.Customer{
		{Name: "Asha", MobileNumber: "9876543210"},
		{Name: "Ashok", MobileNumber: "9123456780"},
	}
	m := f.model

	press(m, "/")
	require.Equal(t, modeSearch, m.mode)
	typeText(m, "ash")

	cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.searching)

	m.Update(cmd())
	assert.Equal(t, []string{"ash"}, f.searcher.terms)
	require.Len(t, m.results, 2)
	assert.False(t, m.searching)

	press(m, "down", "enter")
	assert.Equal(t, "Ashok", m.customerName)
	assert.Equal(t, "9123456780", m.mobileNumber)
	assert.Equal(t, modeCalendar, m.mode)
}

func TestSearchBlankTermSkipsStore(t *testing.T) {
	f := newFixture(t, march5)
	m := f.model

	press(m, "/")
	cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Empty(t, f.searcher.terms)
}

func TestSearchFailureShowsAlert(t *testing.T) {
	f := newFixture(t, march5)
	f.searcher.err = errors.New("boom")
	m := f.model

	press(m, "/")
	typeText(m, "a")
	cmd := press(m, "enter")
	m.Update(cmd())

	assert.Equal(t, modeAlert, m.mode)
	assert.Equal(t, models.AlertSearchFailed, m.alert)

	press(m, "enter")
	assert.Equal(t, modeSearch, m.mode)
}

func TestSubmitValidationAlerts(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "missing customer", err: submission.ErrMissingCustomer, want: models.AlertMissingDetails},
		{name: "no deliveries", err: submission.ErrNoDeliveries, want: models.AlertMissingDetails},
		{name: "invalid mobile", err: submission.ErrInvalidMobile, want: models.AlertInvalidCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, march5)
			f.submitter.err = tt.err
			m := f.model
			m.customerName = "Asha"
			press(m, "space", "s")

			assert.Equal(t, tt.want, m.alert)
			assert.Equal(t, "Asha", m.customerName)
			assert.Equal(t, 1, m.sheet.Len())
		})
	}
}

func TestSubmitSuccessResetsForm(t *testing.T) {
	f := newFixture(t, march5)
	m := f.model
	m.customerName = "Asha"
	m.mobileNumber = "9876543210"
	m.price = 70

	press(m, "w", "s")

	require.Len(t, f.submitter.bills, 1)
	bill := f.submitter.bills[0]
	assert.Equal(t, "Asha", bill.CustomerName)
	assert.Equal(t, 70.0, bill.PricePerLiter)
	assert.Len(t, bill.Entries, 31)

	assert.Equal(t, models.AlertSubmitted, m.alert)
	assert.Empty(t, m.customerName)
	assert.Empty(t, m.mobileNumber)
	assert.Equal(t, 60.0, m.price)
	assert.False(t, m.sheet.WholeMonth())
	assert.Zero(t, m.sheet.Len())
}

func TestWhatsAppLink(t *testing.T) {
	f := newFixture(t, march5)
	f.messenger.msg = messaging.Message{URL: "https://wa.me/919876543210?text=hi"}
	m := f.model

	press(m, "m")

	assert.Equal(t, "https://wa.me/919876543210?text=hi", m.lastLink)
	assert.Contains(t, m.alert, m.lastLink)
}

func TestWhatsAppAlerts(t *testing.T) {
	f := newFixture(t, march5)
	m := f.model

	f.messenger.err = messaging.ErrInvalidPhone
	press(m, "m")
	assert.Equal(t, models.AlertInvalidPhone, m.alert)

	press(m, "enter")
	f.messenger.err = messaging.ErrNoDeliveries
	press(m, "m")
	assert.Equal(t, models.AlertNoDaysForBill, m.alert)
}

func TestPDFRequiresDeliveries(t *testing.T) {
	f := newFixture(t, march5)

	press(f.model, "d")

	assert.Equal(t, models.AlertNoDaysForPDF, f.model.alert)
	assert.Empty(t, f.renderer.bills)
}

func TestPDFWritesInvoiceFile(t *testing.T) {
	f := newFixture(t, march5)
	m := f.model
	m.customerName = "Asha"

	press(m, "space", "d")

	require.Len(t, f.renderer.bills, 1)
	want := filepath.Join(m.deps.PDFDir, "Asha March Bill.pdf")
	assert.Equal(t, want, m.lastPDF)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
}

func TestQuit(t *testing.T) {
	f := newFixture(t, march5)

	cmd := press(f.model, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestView(t *testing.T) {
	f := newFixture(t, march5)
	m := f.model
	m.customerName = "Asha"
	press(m, "space")

	out := m.View()
	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "Sun")
	assert.Contains(t, out, "Days: 1   Total Milk: 1.00 L   Amount: ₹60.00")

	press(m, "s")
	assert.Contains(t, m.View(), models.AlertSubmitted)
}
