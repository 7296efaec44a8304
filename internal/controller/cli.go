package controller

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmorozov/vaccine_scheduler/internal/model"
	"github.com/dmorozov/vaccine_scheduler/internal/service"
	"github.com/dmorozov/vaccine_scheduler/internal/session"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// CLI reads whitespace-delimited commands from a line-oriented input and
// dispatches them to the services. One command completes fully before the
// next line is read; no failure ever stops the loop, only quit or EOF do.
type CLI struct {
	accounts     *service.AccountService
	vaccines     *service.VaccineService
	appointments *service.AppointmentService
	sess         *session.Session
	out          io.Writer
	logger       *zap.Logger
}

func New(
	accounts *service.AccountService,
	vaccines *service.VaccineService,
	appointments *service.AppointmentService,
	out io.Writer,
	logger *zap.Logger,
) *CLI {
	return &CLI{
		accounts:     accounts,
		vaccines:     vaccines,
		appointments: appointments,
		sess:         session.New(),
		out:          out,
		logger:       logger,
	}
}

// Run executes the command loop until quit or EOF.
func (c *CLI) Run(ctx context.Context, in io.Reader) error {
	c.printBanner()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")

		if !scanner.Scan() {
			break
		}

		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		if tokens[0] == "quit" {
			fmt.Fprintln(c.out, "Bye!")
			return nil
		}

		c.dispatch(ctx, tokens[0], tokens[1:])
	}

	return scanner.Err()
}

func (c *CLI) dispatch(ctx context.Context, verb string, args []string) {
	switch verb {
	case "create_patient":
		c.handleCreate(ctx, model.RolePatient, args)
	case "create_caregiver":
		c.handleCreate(ctx, model.RoleCaregiver, args)
	case "login_patient":
		c.handleLogin(ctx, model.RolePatient, args)
	case "login_caregiver":
		c.handleLogin(ctx, model.RoleCaregiver, args)
	case "search_caregiver_schedule":
		c.handleSearch(ctx, args)
	case "reserve":
		c.handleReserve(ctx, args)
	case "upload_availability":
		c.handleUploadAvailability(ctx, args)
	case "cancel":
		c.handleCancel(ctx, args)
	case "add_doses":
		c.handleAddDoses(ctx, args)
	case "show_appointments":
		c.handleShowAppointments(ctx, args)
	case "logout":
		c.handleLogout(args)
	default:
		fmt.Fprintln(c.out, "Invalid operation name!")
	}
}

func (c *CLI) printBanner() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Welcome to the vaccine reservation scheduling application!")
	fmt.Fprintln(c.out, "*** Please enter one of the following commands ***")
	fmt.Fprintln(c.out, "> create_patient <username> <password>")
	fmt.Fprintln(c.out, "> create_caregiver <username> <password>")
	fmt.Fprintln(c.out, "> login_patient <username> <password>")
	fmt.Fprintln(c.out, "> login_caregiver <username> <password>")
	fmt.Fprintln(c.out, "> search_caregiver_schedule <date>")
	fmt.Fprintln(c.out, "> reserve <date> <vaccine>")
	fmt.Fprintln(c.out, "> upload_availability <date>")
	fmt.Fprintln(c.out, "> cancel <appointment_id>")
	fmt.Fprintln(c.out, "> add_doses <vaccine> <number>")
	fmt.Fprintln(c.out, "> show_appointments")
	fmt.Fprintln(c.out, "> logout")
	fmt.Fprintln(c.out, "> quit")
	fmt.Fprintln(c.out)
}

// requireLogin returns the active identity, printing the login prompt and
// returning false when nobody is logged in.
func (c *CLI) requireLogin() (session.Identity, bool) {
	ident, ok := c.sess.Identity()
	if !ok {
		fmt.Fprintln(c.out, "Please login first!")
		return session.Identity{}, false
	}
	return ident, true
}

// requireRole returns the active identity if it has the given role.
func (c *CLI) requireRole(role model.Role) (session.Identity, bool) {
	ident, ok := c.sess.Identity()
	if !ok || ident.Role != role {
		if role == model.RoleCaregiver {
			fmt.Fprintln(c.out, "Please login as a caregiver first!")
		} else {
			fmt.Fprintln(c.out, "Please login as a patient first!")
		}
		return session.Identity{}, false
	}
	return ident, true
}
