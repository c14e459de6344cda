package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/milkbill/internal/billing"
	"github.com/mamadbah2/milkbill/internal/config"
	"github.com/mamadbah2/milkbill/internal/domain/models"
)

type fakeReporter struct {
	months []billing.Month
	err    error
}

func (f *fakeReporter) MonthlyReport(_ context.Context, month billing.Month) (string, error) {
	f.months = append(f.months, month)
	return "summary of " + month.Label(), f.err
}

type fakeMessenger struct {
	sent []models.OutboundMessageRequest
}

func (f *fakeMessenger) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	f.sent = append(f.sent, req)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		WhatsApp: config.WhatsAppConfig{
			AccessToken:   "token",
			PhoneNumberID: "123",
			OwnerNumber:   "919000000000",
		},
		Reporting: config.ReportingConfig{CronSchedule: "0 8 1 * *", Timezone: "UTC"},
	}
}

func TestSendMonthlySummary(t *testing.T) {
	reporter := &fakeReporter{}
	messenger := &fakeMessenger{}

	s, err := NewScheduler(testConfig(), reporter, messenger, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC) }

	s.sendMonthlySummary()

	assert.Equal(t, []billing.Month{{Year: 2023, Month: time.December}}, reporter.months)
	assert.Equal(t, []models.OutboundMessageRequest{{To: "919000000000", Message: "summary of December 2023"}}, messenger.sent)
}

func TestSendMonthlySummaryUsesConfiguredTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.Timezone = "Asia/Kolkata"
	reporter := &fakeReporter{}

	s, err := NewScheduler(cfg, reporter, &fakeMessenger{}, nil)
	require.NoError(t, err)
	// 20:00 UTC on March 31st is already April 1st in India.
	s.now = func() time.Time { return time.Date(2024, time.March, 31, 20, 0, 0, 0, time.UTC) }

	s.sendMonthlySummary()
	assert.Equal(t, []billing.Month{{Year: 2024, Month: time.March}}, reporter.months)
}

func TestSendMonthlySummaryReportError(t *testing.T) {
	messenger := &fakeMessenger{}
	s, err := NewScheduler(testConfig(), &fakeReporter{err: errors.New("down")}, messenger, nil)
	require.NoError(t, err)

	s.sendMonthlySummary()
	assert.Empty(t, messenger.sent)
}

func TestStart(t *testing.T) {
	s, err := NewScheduler(testConfig(), &fakeReporter{}, &fakeMessenger{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()

	cfg := testConfig()
	cfg.Reporting.CronSchedule = "not a schedule"
	s, err = NewScheduler(cfg, &fakeReporter{}, &fakeMessenger{}, nil)
	require.NoError(t, err)
	require.Error(t, s.Start())
}

func TestStartDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.WhatsApp.OwnerNumber = ""

	s, err := NewScheduler(cfg, &fakeReporter{}, &fakeMessenger{}, nil)
	require.NoError(t, err)
	assert.False(t, s.Enabled())
	require.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
}

func TestNewSchedulerBadTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.Timezone = "Mars/Olympus"
	_, err := NewScheduler(cfg, &fakeReporter{}, &fakeMessenger{}, nil)
	require.Error(t, err)
}
