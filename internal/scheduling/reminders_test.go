package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
	"github.com/m04kA/SMC-ShowingService/pkg/ptr"
)

func TestResolveReminders_Defaults(t *testing.T) {
	settings := domain.DefaultCalendarSettings(1)

	got := ResolveReminders(ReminderOverrides{}, settings)

	assert.Equal(t, domain.Reminders{
		AgentEnabled:      true,
		AgentLeadMinutes:  30,
		ClientEnabled:     true,
		ClientLeadMinutes: 60,
	}, got)
}

func TestResolveReminders_LeadFloorsFollowSettings(t *testing.T) {
	settings := domain.DefaultCalendarSettings(1)
	settings.BufferMinutes = 45
	settings.DefaultDurationMinutes = 90

	got := ResolveReminders(ReminderOverrides{}, settings)

	assert.Equal(t, 45, got.AgentLeadMinutes)
	assert.Equal(t, 90, got.ClientLeadMinutes)
}

func TestResolveReminders_Overrides(t *testing.T) {
	settings := domain.DefaultCalendarSettings(1)

	got := ResolveReminders(ReminderOverrides{
		AgentLeadMinutes:  ptr.Ptr(10),
		ClientEnabled:     ptr.Ptr(false),
		ClientLeadMinutes: ptr.Ptr(120),
	}, settings)

	assert.True(t, got.AgentEnabled)
	assert.Equal(t, 10, got.AgentLeadMinutes)
	assert.False(t, got.ClientEnabled)
	assert.Zero(t, got.ClientLeadMinutes)
}

func TestResolveReminders_DisabledBySettings(t *testing.T) {
	settings := domain.DefaultCalendarSettings(1)
	settings.NewAppointmentAlertsEnabled = false
	settings.EmailRemindersEnabled = false

	got := ResolveReminders(ReminderOverrides{
		AgentEnabled:      ptr.Ptr(true),
		AgentLeadMinutes:  ptr.Ptr(45),
		ClientEnabled:     ptr.Ptr(true),
		ClientLeadMinutes: ptr.Ptr(45),
	}, settings)

	assert.Equal(t, domain.Reminders{}, got)
}

func TestResolveReminders_ZeroOverrideIsHonored(t *testing.T) {
	settings := domain.DefaultCalendarSettings(1)

	got := ResolveReminders(ReminderOverrides{
		AgentLeadMinutes:  ptr.Ptr(0),
		ClientLeadMinutes: ptr.Ptr(0),
	}, settings)

	assert.Equal(t, domain.Reminders{
		AgentEnabled:      true,
		AgentLeadMinutes:  0,
		ClientEnabled:     true,
		ClientLeadMinutes: 0,
	}, got)
}
