// Package console is the numbered text-menu front end.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/stadium-booking/internal/facility"
	"github.com/example/stadium-booking/internal/manager"
)

const menuText = `
1. Add Facility
2. View Facilities
3. Make Booking
4. View Bookings
5. Cancel Booking
6. Exit
Enter your choice: `

type Menu struct {
	mgr *manager.Manager
	in  io.Reader
	out io.Writer

	lines   <-chan string
	scanErr error // set before lines is closed
}

func New(mgr *manager.Manager, in io.Reader, out io.Writer) *Menu {
	return &Menu{mgr: mgr, in: in, out: out}
}

// Run loops until the operator picks Exit, input ends, or ctx is done. A
// prompt blocked on input returns as soon as ctx is cancelled.
func (c *Menu) Run(ctx context.Context) error {
	c.lines = c.scan(ctx)
	c.println("Welcome to Stadium Booking System!")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, ok := c.prompt(ctx, menuText)
		if !ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			return c.scanErr
		}
		switch choice {
		case "1":
			c.addFacility(ctx)
		case "2":
			c.viewFacilities()
		case "3":
			c.makeBooking(ctx)
		case "4":
			c.viewBookings()
		case "5":
			c.cancelBooking(ctx)
		case "6":
			c.println("Exiting Stadium Booking System. Goodbye")
			return nil
		default:
			c.println("Invalid choice. Please try again.")
		}
	}
}

func (c *Menu) addFacility(ctx context.Context) {
	c.println("Choose Facility Type:")
	c.println("1. Seating Section")
	c.println("2. Conference Room")
	kindStr, ok := c.prompt(ctx, "Enter your choice: ")
	if !ok {
		return
	}
	kind, err := facility.ParseKind(kindStr)
	if err != nil {
		c.println("Invalid choice.")
		return
	}

	name, ok := c.prompt(ctx, "Enter facility name: ")
	if !ok {
		return
	}
	if name == "" {
		c.println(manager.Message(facility.ErrInvalidName))
		return
	}
	capStr, ok := c.prompt(ctx, "Enter facility capacity: ")
	if !ok {
		return
	}
	capacity, err := strconv.Atoi(capStr)
	if err != nil || capacity <= 0 {
		c.println(manager.Message(facility.ErrInvalidCapacity))
		return
	}

	req := manager.AddFacilityRequest{Name: name, Capacity: capacity, Kind: kind}
	switch kind {
	case facility.KindSeatingSection:
		if req.SeatType, ok = c.prompt(ctx, "Enter seat type (VIP/Regular): "); !ok {
			return
		}
	case facility.KindConferenceRoom:
		s, ok := c.prompt(ctx, "Is a projector available? (yes/no): ")
		if !ok {
			return
		}
		if req.HasProjector, err = parseYesNo(s); err != nil {
			c.println("Invalid answer. Please enter yes or no.")
			return
		}
	}

	f, err := c.mgr.AddFacility(req)
	if err != nil {
		c.println(manager.Message(err))
		return
	}
	c.println(manager.FacilityAddedMessage(f))
}

func (c *Menu) viewFacilities() {
	views := c.mgr.Facilities()
	if len(views) == 0 {
		c.println("No facilities available.")
		return
	}
	for _, v := range views {
		c.println(v.Describe())
	}
}

func (c *Menu) makeBooking(ctx context.Context) {
	var req manager.BookingRequest
	var ok bool
	if req.Facility, ok = c.prompt(ctx, "Enter facility name: "); !ok {
		return
	}
	if req.Date, ok = c.prompt(ctx, "Enter booking date (yyyy-MM-dd): "); !ok {
		return
	}
	if req.Time, ok = c.prompt(ctx, "Enter booking time (HH:mm): "); !ok {
		return
	}
	unitsStr, ok := c.prompt(ctx, "Enter number of units to book [1]: ")
	if !ok {
		return
	}
	units, err := parseUnits(unitsStr)
	if err != nil {
		c.println("Invalid number of booked units.")
		return
	}
	req.Units = units

	b, err := c.mgr.MakeBooking(req)
	if err != nil {
		c.println(manager.Message(err))
		return
	}
	c.println(manager.BookedMessage(b))
}

func (c *Menu) viewBookings() {
	c.println("Bookings for all facilities:")
	bs := c.mgr.Bookings()
	if len(bs) == 0 {
		c.println("No bookings found.")
		return
	}
	for _, b := range bs {
		c.println(b.String())
	}
}

func (c *Menu) cancelBooking(ctx context.Context) {
	var req manager.CancelRequest
	var ok bool
	if req.Facility, ok = c.prompt(ctx, "Enter facility name: "); !ok {
		return
	}
	if req.Date, ok = c.prompt(ctx, "Enter booking date (yyyy-MM-dd): "); !ok {
		return
	}
	if req.Time, ok = c.prompt(ctx, "Enter booking time (HH:mm): "); !ok {
		return
	}
	b, found, err := c.mgr.CancelBooking(req)
	if err != nil {
		c.println(manager.Message(err))
		return
	}
	c.println(manager.CancelledMessage(b, found))
}

func (c *Menu) scan(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		c.scanErr = sc.Err()
	}()
	return lines
}

func (c *Menu) prompt(ctx context.Context, label string) (string, bool) {
	fmt.Fprint(c.out, label)
	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	case <-ctx.Done():
		return "", false
	}
}

func (c *Menu) println(s string) {
	fmt.Fprintln(c.out, s)
}

// parseUnits defaults an empty answer to a single unit.
func parseUnits(s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	return strconv.Atoi(s)
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}
