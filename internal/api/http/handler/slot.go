package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/trialbook_backend/internal/service/scheduling"
)

type SlotHandler struct {
	svc scheduling.Service
}

func NewSlotHandler(svc scheduling.Service) *SlotHandler {
	return &SlotHandler{svc: svc}
}

func mapSlotError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, scheduling.ErrSlotNotFound):
		return notFound(c, "Slot not found")
	case errors.Is(err, scheduling.ErrSlotNotAvailable):
		return badRequest(c, "Slot is not available")
	case errors.Is(err, scheduling.ErrMissingPatientFields):
		return badRequest(c, "Patient name, email, and phone are required")
	case errors.Is(err, scheduling.ErrInvalidSlot):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// ---------------------------------------------------------------------------
// Slots
// ---------------------------------------------------------------------------

// GET /booking-slots
func (h *SlotHandler) List(c fiber.Ctx) error {
	slots, err := h.svc.List(c.Context())
	if err != nil {
		return mapSlotError(c, err)
	}
	return ok(c, slots)
}

// GET /available-slots
func (h *SlotHandler) Available(c fiber.Ctx) error {
	slots, err := h.svc.Available(c.Context())
	if err != nil {
		return mapSlotError(c, err)
	}
	return ok(c, slots)
}

// GET /booking-slots/:id
func (h *SlotHandler) Get(c fiber.Ctx) error {
	slot, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapSlotError(c, err)
	}
	return ok(c, slot)
}

// POST /booking-slots
func (h *SlotHandler) Create(c fiber.Ctx) error {
	var body struct {
		Date        string `json:"date"`
		Time        string `json:"time"`
		TrialName   string `json:"trialName"`
		ContactInfo string `json:"contactInfo"`
		Status      string `json:"status"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	slot, err := h.svc.Create(c.Context(), scheduling.CreateSlotRequest{
		Date:        body.Date,
		Time:        body.Time,
		TrialName:   body.TrialName,
		ContactInfo: body.ContactInfo,
		Status:      body.Status,
	})
	if err != nil {
		return mapSlotError(c, err)
	}
	return created(c, slot)
}

// PATCH /booking-slots/:id
func (h *SlotHandler) Update(c fiber.Ctx) error {
	var body struct {
		Date        string `json:"date"`
		Time        string `json:"time"`
		TrialName   string `json:"trialName"`
		ContactInfo string `json:"contactInfo"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	slot, err := h.svc.UpdateDetails(c.Context(), c.Params("id"), scheduling.UpdateSlotRequest{
		Date:        body.Date,
		Time:        body.Time,
		TrialName:   body.TrialName,
		ContactInfo: body.ContactInfo,
	})
	if err != nil {
		return mapSlotError(c, err)
	}
	return ok(c, slot)
}

// ---------------------------------------------------------------------------
// Booking
// ---------------------------------------------------------------------------

// POST /book-slot/:id
func (h *SlotHandler) Book(c fiber.Ctx) error {
	var body struct {
		PatientName  string `json:"patientName"`
		PatientEmail string `json:"patientEmail"`
		PatientPhone string `json:"patientPhone"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	res, err := h.svc.Book(c.Context(), c.Params("id"), scheduling.BookRequest{
		PatientName:  body.PatientName,
		PatientEmail: body.PatientEmail,
		PatientPhone: body.PatientPhone,
	})
	if err != nil {
		return mapSlotError(c, err)
	}

	return ok(c, fiber.Map{
		"message": "Slot booked successfully",
		"slot":    res.Slot,
		"user":    res.User,
	})
}

// GET /stats
func (h *SlotHandler) Stats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		return mapSlotError(c, err)
	}
	return ok(c, stats)
}
