package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmorozov/vaccine_scheduler/internal/model"
	"go.uber.org/zap"
)

func (c *CLI) handleCreate(ctx context.Context, role model.Role, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Please try again!")
		return
	}
	username, password := args[0], args[1]

	err := c.accounts.Register(ctx, role, username, password)
	switch {
	case errors.Is(err, model.ErrUsernameTaken):
		fmt.Fprintln(c.out, "Username taken, try again!")
	case err != nil:
		c.logger.Error("Failed to create account",
			zap.String("username", username),
			zap.String("role", string(role)),
			zap.Error(err),
		)
		fmt.Fprintln(c.out, "Create failed, please try again!")
	default:
		fmt.Fprintln(c.out, "Account created successfully!")
	}
}

func (c *CLI) handleLogin(ctx context.Context, role model.Role, args []string) {
	// At most one identity at a time, of either kind.
	if c.sess.LoggedIn() {
		fmt.Fprintln(c.out, "Already logged-in!")
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Please try again!")
		return
	}
	username, password := args[0], args[1]

	err := c.accounts.Authenticate(ctx, role, username, password)
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		fmt.Fprintln(c.out, "Login failed, please try again!")
	case err != nil:
		c.logger.Error("Failed to log in",
			zap.String("username", username),
			zap.String("role", string(role)),
			zap.Error(err),
		)
		fmt.Fprintln(c.out, "Login failed, please try again!")
	default:
		c.sess.LogIn(username, role)
		fmt.Fprintf(c.out, "Logged in as: %s\n", username)
	}
}

func (c *CLI) handleSearch(ctx context.Context, args []string) {
	if _, ok := c.requireLogin(); !ok {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Please try again!")
		return
	}

	date, err := time.Parse(dateLayout, args[0])
	if err != nil {
		fmt.Fprintln(c.out, "Please enter a valid date!")
		return
	}

	caregivers, err := c.appointments.AvailableCaregivers(ctx, date)
	if err != nil {
		c.logger.Error("Failed to search caregiver schedule", zap.Error(err))
		fmt.Fprintln(c.out, "Failed to search caregiver schedule, please try again!")
		return
	}

	vaccines, err := c.vaccines.List(ctx)
	if err != nil {
		c.logger.Error("Failed to list vaccines", zap.Error(err))
		fmt.Fprintln(c.out, "Failed to search caregiver schedule, please try again!")
		return
	}

	fmt.Fprintf(c.out, "Caregivers available on %s:\n", args[0])
	if len(caregivers) == 0 {
		fmt.Fprintln(c.out, "No caregiver is available on this date, please select another date!")
	}
	for _, username := range caregivers {
		fmt.Fprintln(c.out, username)
	}

	fmt.Fprintln(c.out, "Vaccine doses:")
	for _, vaccine := range vaccines {
		fmt.Fprintf(c.out, "%s: %d\n", vaccine.Name, vaccine.Doses)
	}
}

func (c *CLI) handleReserve(ctx context.Context, args []string) {
	ident, ok := c.requireRole(model.RolePatient)
	if !ok {
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Please try again!")
		return
	}

	date, err := time.Parse(dateLayout, args[0])
	if err != nil {
		fmt.Fprintln(c.out, "Please enter a valid date!")
		return
	}
	vaccineName := args[1]

	appt, err := c.appointments.Reserve(ctx, ident.Username, date, vaccineName)
	switch {
	case errors.Is(err, model.ErrVaccineNotFound):
		fmt.Fprintln(c.out, "Vaccine not found, please try again!")
	case errors.Is(err, model.ErrNoDosesLeft):
		fmt.Fprintln(c.out, "No dose left for this vaccine, please choose another vaccine!")
	case errors.Is(err, model.ErrNoCaregiverAvailable):
		fmt.Fprintf(c.out, "No caregiver is available on %s, please select another date!\n", args[0])
	case err != nil:
		c.logger.Error("Failed to reserve appointment",
			zap.String("patient", ident.Username),
			zap.Error(err),
		)
		fmt.Fprintln(c.out, "Failed to reserve appointment, please try again!")
	default:
		fmt.Fprintf(c.out, "Appointment scheduled with %s on %s.\n", appt.CaregiverUsername, args[0])
		fmt.Fprintf(c.out, "Appointment ID: %s\n", appt.ID)
	}
}

func (c *CLI) handleUploadAvailability(ctx context.Context, args []string) {
	ident, ok := c.requireRole(model.RoleCaregiver)
	if !ok {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Please try again!")
		return
	}

	date, err := time.Parse(dateLayout, args[0])
	if err != nil {
		fmt.Fprintln(c.out, "Please enter a valid date!")
		return
	}

	if err := c.appointments.UploadAvailability(ctx, ident.Username, date); err != nil {
		c.logger.Error("Failed to upload availability",
			zap.String("caregiver", ident.Username),
			zap.Error(err),
		)
		fmt.Fprintln(c.out, "Failed to upload availability, please try again!")
		return
	}

	fmt.Fprintln(c.out, "Availability uploaded!")
}

func (c *CLI) handleCancel(ctx context.Context, args []string) {
	ident, ok := c.requireLogin()
	if !ok {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Please try again!")
		return
	}
	id := args[0]

	err := c.appointments.Cancel(ctx, id, ident.Role, ident.Username)
	switch {
	case errors.Is(err, model.ErrAppointmentNotFound):
		fmt.Fprintln(c.out, "Appointment doesn't exist or you are not authorized to cancel it!")
	case err != nil:
		c.logger.Error("Failed to cancel appointment",
			zap.String("appointment_id", id),
			zap.Error(err),
		)
		fmt.Fprintln(c.out, "Failed to cancel appointment, please try again!")
	default:
		fmt.Fprintf(c.out, "Appointment %s has been canceled.\n", id)
	}
}

func (c *CLI) handleAddDoses(ctx context.Context, args []string) {
	ident, ok := c.requireRole(model.RoleCaregiver)
	if !ok {
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Please try again!")
		return
	}
	vaccineName := args[0]

	count, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(c.out, "Please enter a valid number of doses!")
		return
	}

	_, err = c.vaccines.AddDoses(ctx, vaccineName, count)
	switch {
	case errors.Is(err, model.ErrInvalidDoseCount):
		fmt.Fprintln(c.out, "Please enter a valid number of doses!")
	case err != nil:
		c.logger.Error("Failed to add doses",
			zap.String("caregiver", ident.Username),
			zap.String("vaccine", vaccineName),
			zap.Error(err),
		)
		fmt.Fprintln(c.out, "Failed to add doses, please try again!")
	default:
		fmt.Fprintln(c.out, "Doses updated!")
	}
}

func (c *CLI) handleShowAppointments(ctx context.Context, args []string) {
	ident, ok := c.requireLogin()
	if !ok {
		return
	}
	if len(args) != 0 {
		fmt.Fprintln(c.out, "Please try again!")
		return
	}

	appointments, err := c.appointments.List(ctx, ident.Role, ident.Username)
	if err != nil {
		c.logger.Error("Failed to show appointments",
			zap.String("username", ident.Username),
			zap.Error(err),
		)
		fmt.Fprintln(c.out, "Failed to show appointments, please try again!")
		return
	}

	for _, appt := range appointments {
		counterpart := appt.CaregiverUsername
		if ident.Role == model.RoleCaregiver {
			counterpart = appt.PatientUsername
		}
		fmt.Fprintf(c.out, "%s %s %s %s\n",
			appt.ID,
			appt.Date.Format(dateLayout),
			counterpart,
			appt.VaccineName,
		)
	}
}

func (c *CLI) handleLogout(args []string) {
	if len(args) != 0 {
		fmt.Fprintln(c.out, "Please try again!")
		return
	}

	if c.sess.LogOut() {
		fmt.Fprintln(c.out, "Successfully logged out!")
	} else {
		fmt.Fprintln(c.out, "Already logged out!")
	}
}
