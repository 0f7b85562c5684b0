package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/appointments"
	"github.com/clinicdesk/clinicdesk/internal/auth"
	"github.com/clinicdesk/clinicdesk/internal/chat"
	"github.com/clinicdesk/clinicdesk/internal/nav"
	"github.com/clinicdesk/clinicdesk/internal/views"
)

func (a *app) cmdAppointments(ctx context.Context) error {
	user, registry, err := a.restore(ctx)
	if err != nil {
		return err
	}
	if err := registry.Check(nav.RouteAppointments, nil); err != nil {
		return fmt.Errorf("the %s role has no appointments tab", a.session.Role())
	}

	screen := views.NewPatientAppointments(a.client, user.ProfileID, a.logger)
	if err := screen.Load(ctx); err != nil {
		return err
	}

	printTab := func(title string, appts []appointments.Appointment) {
		fmt.Printf("%s (%d)\n", title, len(appts))
		for _, appt := range appts {
			who := appt.DoctorName
			if who == "" {
				who = appt.DoctorID
			}
			fmt.Printf("  %s  %s %s  %-10s  %s\n", appt.ID, appt.Date(), appt.Clock(), appt.Status.Label(), who)
		}
	}
	printTab("Upcoming", screen.Upcoming())
	printTab("Past", screen.Past())
	printTab("Cancelled", screen.Cancelled())
	return nil
}

func (a *app) cmdSlots(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: clinicdesk slots <doctorID> <YYYY-MM-DD>")
	}
	if _, _, err := a.restore(ctx); err != nil {
		return err
	}
	date, err := parseDate(args[1])
	if err != nil {
		return err
	}

	booking := views.NewBooking(a.client, args[0], a.logger)
	if err := booking.Load(ctx, date); err != nil {
		return err
	}

	day := booking.Day()
	if len(day.Slots) == 0 {
		fmt.Println("no availability on", args[1])
		return nil
	}
	fmt.Println("Morning")
	for _, s := range day.Morning() {
		fmt.Printf("  %s-%s  %s\n", s.Start, s.End, slotMark(s.Booked))
	}
	fmt.Println("Afternoon")
	for _, s := range day.Afternoon() {
		fmt.Printf("  %s-%s  %s\n", s.Start, s.End, slotMark(s.Booked))
	}
	return nil
}

func slotMark(booked bool) string {
	if booked {
		return "booked"
	}
	return "free"
}

func (a *app) cmdBook(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: clinicdesk book <doctorID> <YYYY-MM-DD> <HH:MM> [reason]")
	}
	user, registry, err := a.restore(ctx)
	if err != nil {
		return err
	}
	if err := registry.Check(nav.RouteBookAppointment, nav.BookAppointmentParams{DoctorID: args[0]}); err != nil {
		return fmt.Errorf("the %s role cannot book appointments", a.session.Role())
	}
	date, err := parseDate(args[1])
	if err != nil {
		return err
	}
	reason := strings.Join(args[3:], " ")

	booking := views.NewBooking(a.client, args[0], a.logger)
	if err := booking.Load(ctx, date); err != nil {
		return err
	}
	if err := booking.SelectSlot(args[2]); err != nil {
		return err
	}
	created, err := booking.Confirm(ctx, user.ProfileID, reason)
	if err != nil {
		return err
	}
	fmt.Printf("booked %s at %s (id %s)\n", args[1], args[2], created.ID)
	return nil
}

func (a *app) cmdCancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: clinicdesk cancel <appointmentID>")
	}
	if _, _, err := a.restore(ctx); err != nil {
		return err
	}
	cancelled, err := a.client.Appointments.Cancel(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("appointment %s is now %s\n", cancelled.ID, cancelled.Status)
	return nil
}

func (a *app) cmdLog(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: clinicdesk log <YYYY-MM-DD> [check-in|no-show|complete <appointmentID>]")
	}
	_, registry, err := a.restore(ctx)
	if err != nil {
		return err
	}
	if err := registry.Check(nav.RouteStaffAppointmentLog, nil); err != nil {
		return fmt.Errorf("the %s role has no appointment log", a.session.Role())
	}
	date, err := parseDate(args[0])
	if err != nil {
		return err
	}

	log := views.NewStaffLog(a.client, a.logger)
	if err := log.Load(ctx, date); err != nil {
		return err
	}
	if len(args) == 3 {
		switch args[1] {
		case "check-in":
			err = log.CheckIn(ctx, args[2])
		case "no-show":
			err = log.MarkNoShow(ctx, args[2])
		case "complete":
			err = log.Complete(ctx, args[2])
		default:
			err = fmt.Errorf("unknown log action %q", args[1])
		}
		if err != nil {
			return err
		}
	}
	for _, appt := range log.Appointments() {
		who := appt.PatientName
		if who == "" {
			who = appt.PatientID
		}
		fmt.Printf("%s  %s  %-10s  %s\n", appt.ID, appt.Clock(), appt.Status.Label(), who)
	}
	return nil
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	user, registry, err := a.restore(ctx)
	if err != nil {
		return err
	}
	if err := registry.Check(nav.RouteProfile, nil); err != nil {
		return fmt.Errorf("the %s role has no profile screen", a.session.Role())
	}

	screen := views.NewProfile(a.client, user.ProfileID, a.logger)
	if err := screen.Load(ctx); err != nil {
		return err
	}
	if len(args) == 3 {
		screen.SetContact(args[0], args[1], args[2])
		if err := screen.Save(ctx); err != nil {
			return err
		}
	}
	p := screen.Patient()
	fmt.Printf("%s %s\n", p.FirstName, p.LastName)
	fmt.Printf("email:   %s\nphone:   %s\naddress: %s\n", p.Email, p.Phone, p.Address)
	if len(p.Allergies) > 0 {
		fmt.Println("allergies:", strings.Join(p.Allergies, ", "))
	}
	if len(p.Medications) > 0 {
		fmt.Println("medications:", strings.Join(p.Medications, ", "))
	}
	return nil
}

func participantType(role auth.Role) string {
	return string(role)
}

func (a *app) cmdChats(ctx context.Context) error {
	user, _, err := a.restore(ctx)
	if err != nil {
		return err
	}
	list := views.NewConversationList(a.client, user.ProfileID, participantType(a.session.Role()))
	if err := list.Load(ctx); err != nil {
		return err
	}
	for _, c := range list.Conversations() {
		last := ""
		if c.LastMessage != nil {
			last = c.LastMessage.Content
		}
		fmt.Printf("%s  unread=%d  %s / %s  %s\n", c.ID, c.UnreadCount, c.ParticipantOneName, c.ParticipantTwoName, last)
	}
	return nil
}

func (a *app) cmdChat(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: clinicdesk chat <conversationID>")
	}
	user, registry, err := a.restore(ctx)
	if err != nil {
		return err
	}
	params := nav.ConversationParams{
		ConversationID:  args[0],
		ParticipantID:   user.ProfileID,
		ParticipantType: participantType(a.session.Role()),
	}
	if err := registry.Check(nav.RouteConversation, params); err != nil {
		return err
	}

	screen := views.NewConversation(a.client, params, a.logger)
	if err := screen.Load(ctx); err != nil {
		return err
	}
	for _, m := range screen.Messages() {
		printMessage(m)
	}

	token, err := a.prefs.AuthToken(ctx)
	if err != nil {
		return err
	}
	fmt.Println("-- following live, ctrl-c to stop --")
	seen := len(screen.Messages())
	go func() {
		_ = screen.Listen(ctx, token)
	}()
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			msgs := screen.Messages()
			for ; seen < len(msgs); seen++ {
				printMessage(msgs[seen])
			}
		}
	}
}

func (a *app) cmdSend(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: clinicdesk send <conversationID> <text>")
	}
	user, registry, err := a.restore(ctx)
	if err != nil {
		return err
	}
	params := nav.ConversationParams{
		ConversationID:  args[0],
		ParticipantID:   user.ProfileID,
		ParticipantType: participantType(a.session.Role()),
	}
	if err := registry.Check(nav.RouteConversation, params); err != nil {
		return err
	}

	screen := views.NewConversation(a.client, params, a.logger)
	msg, err := screen.Send(ctx, strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("send failed (message kept as %s): %w", msg.ID, err)
	}
	fmt.Println("sent", msg.ID)
	return nil
}

func printMessage(m chat.Message) {
	state := ""
	if m.State != chat.Confirmed {
		state = " [" + m.State.String() + "]"
	}
	fmt.Printf("%s  %s(%s): %s%s\n", m.CreatedAt.Format("2006-01-02 15:04"), m.SenderID, m.SenderType, m.Content, state)
}
