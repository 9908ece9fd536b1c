package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
	"github.com/Alijeyrad/trialbook_backend/internal/service/dialogue"
	"github.com/Alijeyrad/trialbook_backend/pkg/constants"
	"github.com/Alijeyrad/trialbook_backend/pkg/email"
	"github.com/Alijeyrad/trialbook_backend/pkg/sms"
)

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc    fx.Lifecycle
	NC    *nats.Conn `optional:"true"`
	DB    *repo.Client
	Email *email.Client
	SMS   *sms.Client
}

func RegisterWorkers(p WorkerParams) {
	if p.NC == nil {
		slog.Info("worker: NATS not configured, booking notifications disabled")
		return
	}

	n := &bookingNotifier{slots: p.DB.Slot, email: p.Email, sms: p.SMS, timeout: 30 * time.Second}

	var sub *nats.Subscription
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			sub, err = p.NC.QueueSubscribe(constants.SubjectSlotBooked+".*", "booking_notifier", n.onMessage)
			if err != nil {
				slog.Error("booking_notifier: subscribe slot.booked failed", "err", err)
				return err
			}
			slog.Info("booking_notifier: started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if sub == nil {
				return nil
			}
			return sub.Unsubscribe()
		},
	})
}

// ---------------------------------------------------------------------------
// booking_notifier
// ---------------------------------------------------------------------------

type smsSender interface {
	SendBookingConfirmation(ctx context.Context, phone string, b sms.Booking) error
}

// bookingNotifier sends the participant an email and an SMS for every
// trialbook.slot.booked.<slotID> event.
type bookingNotifier struct {
	slots   repo.SlotStore
	email   email.Sender
	sms     smsSender
	timeout time.Duration
}

func (n *bookingNotifier) onMessage(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()
	n.handle(ctx, msg.Subject, strings.TrimSpace(string(msg.Data)))
}

func (n *bookingNotifier) handle(ctx context.Context, subject, userID string) {
	slotID := strings.TrimPrefix(subject, constants.SubjectSlotBooked+".")
	if slotID == "" || slotID == subject {
		return
	}

	slot, err := n.slots.Get(ctx, slotID)
	if err != nil {
		slog.Warn("booking_notifier: slot not found", "slot_id", slotID, "err", err)
		return
	}
	if slot.Status != repo.SlotStatusBooked {
		slog.Warn("booking_notifier: slot is not booked", "slot_id", slotID, "status", slot.Status)
		return
	}

	date := dialogue.FormatDate(slot.Date)

	if slot.PatientEmail != "" {
		msg, err := email.BuildBookingConfirmation(email.BookingConfirmation{
			PatientName: slot.PatientName,
			Email:       slot.PatientEmail,
			TrialName:   slot.TrialName,
			Date:        date,
			Time:        slot.Time,
			ContactInfo: slot.ContactInfo,
		})
		if err == nil {
			err = n.email.Send(ctx, msg)
		}
		switch {
		case errors.As(err, &email.ErrDisabled{}):
		case err != nil:
			slog.Warn("booking_notifier: send email failed", "slot_id", slotID, "user_id", userID, "err", err)
		default:
			slog.Info("booking_notifier: confirmation emailed", "slot_id", slotID, "user_id", userID)
		}
	}

	if slot.PatientPhone != "" {
		err := n.sms.SendBookingConfirmation(ctx, slot.PatientPhone, sms.Booking{
			Name:  slot.PatientName,
			Trial: slot.TrialName,
			Date:  date,
			Time:  slot.Time,
		})
		if err != nil {
			slog.Warn("booking_notifier: send sms failed", "slot_id", slotID, "user_id", userID, "err", err)
		}
	}
}
