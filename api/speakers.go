package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/Domenick1991/speakerdesk/internal/service/availability"
	"github.com/Domenick1991/speakerdesk/internal/service/speakers"
	"github.com/gin-gonic/gin"
)

type SpeakerHandler struct {
	speakers         speakers.SpeakerUseCase
	availability     availability.AvailabilityUseCase
	defaultRangeDays int
}

type speakerResponse struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Expertise         string `json:"expertise"`
	PricePerHourCents int64  `json:"price_per_hour_cents"`
}

type availabilityResponse struct {
	Speaker   speakerResponse `json:"speaker"`
	OpenSlots []string        `json:"open_slots"`
}

func NewSpeakerHandler(speakerSvc speakers.SpeakerUseCase, availabilitySvc availability.AvailabilityUseCase, defaultRangeDays int) *SpeakerHandler {
	if defaultRangeDays <= 0 {
		defaultRangeDays = 7
	}
	return &SpeakerHandler{speakers: speakerSvc, availability: availabilitySvc, defaultRangeDays: defaultRangeDays}
}

func (h *SpeakerHandler) Register(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:email/slots", h.slots)
	router.PUT("/me", authMW, RequireRole(domain.RoleSpeaker), h.updateProfile)
}

func (h *SpeakerHandler) list(c *gin.Context) {
	list, err := h.speakers.List(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	resp := make([]speakerResponse, 0, len(list))
	for _, s := range list {
		resp = append(resp, toSpeakerResponse(s))
	}
	c.JSON(http.StatusOK, resp)
}

// slots reports the open hourly slots for a speaker. from/to are inclusive
// UTC calendar dates; without them the next defaultRangeDays days are used.
func (h *SpeakerHandler) slots(c *gin.Context) {
	from := time.Now().UTC()
	to := from.AddDate(0, 0, h.defaultRangeDays-1)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, want YYYY-MM-DD"})
			return
		}
		from = parsed
		to = from.AddDate(0, 0, h.defaultRangeDays-1)
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, want YYYY-MM-DD"})
			return
		}
		to = parsed
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not precede from"})
		return
	}

	result, err := h.availability.ListOpenSlots(c.Request.Context(), c.Param("email"), from, to)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	slots := make([]string, 0, len(result.OpenSlots))
	for _, s := range result.OpenSlots {
		slots = append(slots, s.Format(time.RFC3339))
	}
	c.JSON(http.StatusOK, availabilityResponse{
		Speaker:   toSpeakerResponse(result.Speaker),
		OpenSlots: slots,
	})
}

func (h *SpeakerHandler) updateProfile(c *gin.Context) {
	var req struct {
		Expertise         string `json:"expertise"`
		PricePerHourCents int64  `json:"price_per_hour_cents"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, role := actorFrom(c)
	speaker, err := h.speakers.UpdateProfile(c.Request.Context(), speakers.UpdateProfileInput{
		Email:             email,
		Role:              role,
		Expertise:         req.Expertise,
		PricePerHourCents: req.PricePerHourCents,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toSpeakerResponse(*speaker))
}

func toSpeakerResponse(s domain.Speaker) speakerResponse {
	return speakerResponse{
		Email:             s.Email,
		Name:              s.Name,
		Expertise:         s.Expertise,
		PricePerHourCents: s.PricePerHourCents,
	}
}
