package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/dmorozov/vaccine_scheduler/internal/model"
)

// In-memory implementations of the service store interfaces, mirroring
// the semantics of the pgx repositories (idempotent availability upserts,
// atomic reserve, anti-join search).

const dateLayout = "2006-01-02"

type AccountTable struct {
	accounts map[string]*model.Account
}

func NewAccountTable() *AccountTable {
	return &AccountTable{accounts: make(map[string]*model.Account)}
}

func (t *AccountTable) Create(_ context.Context, acct *model.Account) error {
	if _, ok := t.accounts[acct.Username]; ok {
		return model.ErrUsernameTaken
	}
	acct.CreatedAt = time.Now()
	stored := *acct
	t.accounts[acct.Username] = &stored
	return nil
}

func (t *AccountTable) Get(_ context.Context, username string) (*model.Account, error) {
	acct, ok := t.accounts[username]
	if !ok {
		return nil, nil
	}
	found := *acct
	return &found, nil
}

type InventoryTable struct {
	doses map[string]int
}

func NewInventoryTable() *InventoryTable {
	return &InventoryTable{doses: make(map[string]int)}
}

func (t *InventoryTable) AddDoses(_ context.Context, name string, count int) (int, error) {
	t.doses[name] += count
	return t.doses[name], nil
}

func (t *InventoryTable) GetByName(_ context.Context, name string) (*model.Vaccine, error) {
	doses, ok := t.doses[name]
	if !ok {
		return nil, nil
	}
	return &model.Vaccine{Name: name, Doses: doses}, nil
}

func (t *InventoryTable) List(_ context.Context) ([]*model.Vaccine, error) {
	names := make([]string, 0, len(t.doses))
	for name := range t.doses {
		names = append(names, name)
	}
	sort.Strings(names)

	vaccines := make([]*model.Vaccine, 0, len(names))
	for _, name := range names {
		vaccines = append(vaccines, &model.Vaccine{Name: name, Doses: t.doses[name]})
	}
	return vaccines, nil
}

// ScheduleTable combines availabilities and appointments so that Reserve
// and CancelRestoringDose can touch the inventory the way the SQL
// transactions do.
type ScheduleTable struct {
	inventory    *InventoryTable
	availability map[string]map[string]bool // date -> caregiver set
	appointments map[string]*model.Appointment
}

func NewScheduleTable(inventory *InventoryTable) *ScheduleTable {
	return &ScheduleTable{
		inventory:    inventory,
		availability: make(map[string]map[string]bool),
		appointments: make(map[string]*model.Appointment),
	}
}

func (t *ScheduleTable) Upsert(_ context.Context, caregiver string, date time.Time) error {
	key := date.Format(dateLayout)
	if t.availability[key] == nil {
		t.availability[key] = make(map[string]bool)
	}
	t.availability[key][caregiver] = true
	return nil
}

func (t *ScheduleTable) AvailableCaregivers(_ context.Context, date time.Time) ([]string, error) {
	key := date.Format(dateLayout)

	booked := make(map[string]bool)
	for _, appt := range t.appointments {
		if appt.Date.Format(dateLayout) == key {
			booked[appt.CaregiverUsername] = true
		}
	}

	var usernames []string
	for caregiver := range t.availability[key] {
		if !booked[caregiver] {
			usernames = append(usernames, caregiver)
		}
	}
	sort.Strings(usernames)
	return usernames, nil
}

func (t *ScheduleTable) Reserve(_ context.Context, appt *model.Appointment) error {
	doses, ok := t.inventory.doses[appt.VaccineName]
	if !ok {
		return model.ErrVaccineNotFound
	}
	if doses <= 0 {
		return model.ErrNoDosesLeft
	}

	t.inventory.doses[appt.VaccineName]--
	appt.CreatedAt = time.Now()
	stored := *appt
	t.appointments[appt.ID] = &stored
	return nil
}

func (t *ScheduleTable) CancelRestoringDose(_ context.Context, id string, role model.Role, username string) error {
	appt, ok := t.appointments[id]
	if !ok {
		return model.ErrAppointmentNotFound
	}

	owner := appt.PatientUsername
	if role == model.RoleCaregiver {
		owner = appt.CaregiverUsername
	}
	if owner != username {
		return model.ErrAppointmentNotFound
	}

	delete(t.appointments, id)
	t.inventory.doses[appt.VaccineName]++
	return nil
}

func (t *ScheduleTable) ListByRole(_ context.Context, role model.Role, username string) ([]*model.Appointment, error) {
	var appointments []*model.Appointment
	for _, appt := range t.appointments {
		owner := appt.PatientUsername
		if role == model.RoleCaregiver {
			owner = appt.CaregiverUsername
		}
		if owner == username {
			found := *appt
			appointments = append(appointments, &found)
		}
	}

	sort.Slice(appointments, func(i, j int) bool {
		if !appointments[i].Date.Equal(appointments[j].Date) {
			return appointments[i].Date.Before(appointments[j].Date)
		}
		return appointments[i].ID < appointments[j].ID
	})
	return appointments, nil
}

// Doses returns the current in-memory dose count for assertions.
func (t *InventoryTable) Doses(name string) int {
	return t.doses[name]
}

// Count returns the number of stored appointments for assertions.
func (t *ScheduleTable) Count() int {
	return len(t.appointments)
}
