package controller_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmorozov/vaccine_scheduler/internal/controller"
	"github.com/dmorozov/vaccine_scheduler/internal/service"
	"github.com/dmorozov/vaccine_scheduler/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cliFixture struct {
	inventory *testutil.InventoryTable
	schedule  *testutil.ScheduleTable
	cli       *controller.CLI
	out       *bytes.Buffer
}

func newCLIFixture() *cliFixture {
	logger := zap.NewNop()
	inventory := testutil.NewInventoryTable()
	schedule := testutil.NewScheduleTable(inventory)

	accounts := service.NewAccountService(testutil.NewAccountTable(), testutil.NewAccountTable(), logger)
	vaccines := service.NewVaccineService(inventory, logger)
	appointments := service.NewAppointmentService(schedule, schedule, inventory, logger)

	out := &bytes.Buffer{}
	cli := controller.New(accounts, vaccines, appointments, out, logger)

	return &cliFixture{inventory: inventory, schedule: schedule, cli: cli, out: out}
}

// run feeds a script of newline-separated commands through the loop and
// returns everything printed.
func (f *cliFixture) run(t *testing.T, script string) string {
	t.Helper()
	err := f.cli.Run(context.Background(), strings.NewReader(script))
	require.NoError(t, err)
	return f.out.String()
}

func TestQuitPrintsBye(t *testing.T) {
	out := newCLIFixture().run(t, "quit\n")
	assert.Contains(t, out, "Bye!")
}

func TestUnknownVerb(t *testing.T) {
	out := newCLIFixture().run(t, "frobnicate\nquit\n")
	assert.Contains(t, out, "Invalid operation name!")
	assert.Contains(t, out, "Bye!")
}

func TestArityMismatchContinuesLoop(t *testing.T) {
	out := newCLIFixture().run(t, "create_patient bob\nquit\n")
	assert.Contains(t, out, "Please try again!")
	assert.Contains(t, out, "Bye!")
}

func TestSessionGuards(t *testing.T) {
	out := newCLIFixture().run(t, strings.Join([]string{
		"search_caregiver_schedule 2024-06-01",
		"show_appointments",
		"cancel some-id",
		"quit",
	}, "\n")+"\n")
	assert.Equal(t, 3, strings.Count(out, "Please login first!"))
}

func TestRoleGuards(t *testing.T) {
	f := newCLIFixture()
	out := f.run(t, strings.Join([]string{
		"create_caregiver alice pw1",
		"login_caregiver alice pw1",
		"reserve 2024-06-01 Pfizer",
		"logout",
		"create_patient bob pw2",
		"login_patient bob pw2",
		"upload_availability 2024-06-01",
		"add_doses Pfizer 5",
		"quit",
	}, "\n")+"\n")
	assert.Contains(t, out, "Please login as a patient first!")
	assert.Equal(t, 2, strings.Count(out, "Please login as a caregiver first!"))
}

func TestCreateDoesNotLogIn(t *testing.T) {
	out := newCLIFixture().run(t, strings.Join([]string{
		"create_patient bob pw2",
		"show_appointments",
		"quit",
	}, "\n")+"\n")
	assert.Contains(t, out, "Account created successfully!")
	assert.Contains(t, out, "Please login first!")
}

func TestDuplicateUsernameRejected(t *testing.T) {
	out := newCLIFixture().run(t, strings.Join([]string{
		"create_patient bob pw2",
		"create_patient bob other",
		"quit",
	}, "\n")+"\n")
	assert.Contains(t, out, "Username taken, try again!")
}

func TestLoginRejectsSecondSessionOfEitherKind(t *testing.T) {
	out := newCLIFixture().run(t, strings.Join([]string{
		"create_caregiver alice pw1",
		"create_caregiver carol pw3",
		"login_caregiver alice pw1",
		"login_caregiver carol pw3",
		"login_patient bob pw2",
		"quit",
	}, "\n")+"\n")
	assert.Equal(t, 2, strings.Count(out, "Already logged-in!"))
}

func TestLoginWrongPassword(t *testing.T) {
	out := newCLIFixture().run(t, strings.Join([]string{
		"create_patient bob pw2",
		"login_patient bob wrong",
		"show_appointments",
		"quit",
	}, "\n")+"\n")
	assert.Contains(t, out, "Login failed, please try again!")
	assert.Contains(t, out, "Please login first!")
}

func TestLogoutThenGuardedCommand(t *testing.T) {
	out := newCLIFixture().run(t, strings.Join([]string{
		"create_patient bob pw2",
		"login_patient bob pw2",
		"logout",
		"show_appointments",
		"logout",
		"quit",
	}, "\n")+"\n")
	assert.Contains(t, out, "Successfully logged out!")
	assert.Contains(t, out, "Please login first!")
	assert.Contains(t, out, "Already logged out!")
}

func TestInvalidDateRejected(t *testing.T) {
	out := newCLIFixture().run(t, strings.Join([]string{
		"create_caregiver alice pw1",
		"login_caregiver alice pw1",
		"upload_availability 06-01-2024",
		"quit",
	}, "\n")+"\n")
	assert.Contains(t, out, "Please enter a valid date!")
}

func TestReserveEndToEnd(t *testing.T) {
	f := newCLIFixture()
	out := f.run(t, strings.Join([]string{
		"create_caregiver alice pw1",
		"login_caregiver alice pw1",
		"upload_availability 2024-06-01",
		"add_doses Pfizer 5",
		"logout",
		"create_patient bob pw2",
		"login_patient bob pw2",
		"reserve 2024-06-01 Pfizer",
		"search_caregiver_schedule 2024-06-01",
		"show_appointments",
		"quit",
	}, "\n")+"\n")

	assert.Contains(t, out, "Appointment scheduled with alice on 2024-06-01.")
	assert.Contains(t, out, "Appointment ID: ")
	// After the reservation alice is booked and the dose is consumed.
	assert.Contains(t, out, "No caregiver is available on this date")
	assert.Contains(t, out, "Pfizer: 4")
	// show_appointments lists the counterpart caregiver.
	assert.Contains(t, out, "alice")
	assert.Equal(t, 1, f.schedule.Count())
}

func TestReserveUnknownVaccineEndToEnd(t *testing.T) {
	f := newCLIFixture()
	out := f.run(t, strings.Join([]string{
		"create_caregiver alice pw1",
		"login_caregiver alice pw1",
		"upload_availability 2024-06-01",
		"logout",
		"create_patient bob pw2",
		"login_patient bob pw2",
		"reserve 2024-06-01 Nonexistent",
		"quit",
	}, "\n")+"\n")

	assert.Contains(t, out, "Vaccine not found, please try again!")
	assert.Equal(t, 0, f.schedule.Count())
}

func TestCancelEndToEnd(t *testing.T) {
	f := newCLIFixture()
	f.run(t, strings.Join([]string{
		"create_caregiver alice pw1",
		"login_caregiver alice pw1",
		"upload_availability 2024-06-01",
		"add_doses Pfizer 1",
		"logout",
		"create_patient bob pw2",
		"login_patient bob pw2",
		"reserve 2024-06-01 Pfizer",
		"quit",
	}, "\n")+"\n")
	require.Equal(t, 1, f.schedule.Count())

	// The appointment id only appears in the captured output; fish it out.
	out := f.out.String()
	idx := strings.Index(out, "Appointment ID: ")
	require.GreaterOrEqual(t, idx, 0)
	id := strings.Fields(out[idx+len("Appointment ID: "):])[0]

	f.out.Reset()
	out = f.run(t, strings.Join([]string{
		"cancel wrong-id",
		"cancel " + id,
		"quit",
	}, "\n")+"\n")

	assert.Contains(t, out, "Appointment doesn't exist or you are not authorized to cancel it!")
	assert.Contains(t, out, "Appointment "+id+" has been canceled.")
	assert.Equal(t, 0, f.schedule.Count())
	assert.Equal(t, 1, f.inventory.Doses("Pfizer"))
}
