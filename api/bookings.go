package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/Domenick1991/speakerdesk/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	SpeakerEmail string `json:"speaker_email"`
	SessionAt    string `json:"session_at"`
}

type bookingResponse struct {
	ID           string `json:"id"`
	UserEmail    string `json:"user_email"`
	SpeakerEmail string `json:"speaker_email"`
	SessionAt    string `json:"session_at"`
	SlotIndex    int    `json:"slot_index"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.POST("", authMW, RequireRole(domain.RoleUser), h.create)
	router.GET("/me", authMW, h.listMine)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, role := actorFrom(c)
	booked, err := h.service.BookSlot(c.Request.Context(), booking.BookSlotInput{
		UserEmail:    email,
		Role:         role,
		SpeakerEmail: req.SpeakerEmail,
		SessionAt:    req.SessionAt,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(*booked))
}

func (h *BookingHandler) listMine(c *gin.Context) {
	email, _ := actorFrom(c)
	bookings, err := h.service.ListForUser(c.Request.Context(), email)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:           b.ID,
		UserEmail:    b.UserEmail,
		SpeakerEmail: b.SpeakerEmail,
		SessionAt:    b.SessionAt.UTC().Format(time.RFC3339),
		SlotIndex:    b.SlotIndex,
	}
}
