package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/MeetChat/internal/app/orch"
	"github.com/dkeye/MeetChat/internal/core"
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type MeetingHandler struct {
	store core.MeetingStore
	orch  *orch.Orchestrator
}

func NewMeetingHandler(store core.MeetingStore, o *orch.Orchestrator) *MeetingHandler {
	return &MeetingHandler{store: store, orch: o}
}

// Create answers POST /api/meetings. The caller becomes the creator.
func (h *MeetingHandler) Create(c *gin.Context) {
	id, _ := IdentityFrom(c)
	m, err := h.store.Create(c.Request.Context(), id.UserID)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Str("user", string(id.UserID)).Msg("create meeting")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create meeting"})
		return
	}
	log.Info().Str("module", "adapters.http").Str("meeting", string(m.ID)).Str("user", string(id.UserID)).Msg("meeting created")
	c.JSON(http.StatusCreated, m)
}

func (h *MeetingHandler) Get(c *gin.Context) {
	m, err := h.store.GetByID(c.Request.Context(), domain.MeetingID(c.Param("id")))
	if errors.Is(err, domain.ErrMeetingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("get meeting")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get meeting"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MeetingHandler) End(c *gin.Context) {
	id, _ := IdentityFrom(c)
	m, err := h.orch.EndMeeting(c.Request.Context(), id.UserID, domain.MeetingID(c.Param("id")))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, m)
	case errors.Is(err, domain.ErrMeetingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
	case errors.Is(err, domain.ErrNotCreator):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("end meeting")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end meeting"})
	}
}

// Participants lists who is live in the room right now.
func (h *MeetingHandler) Participants(c *gin.Context) {
	meetingID := domain.MeetingID(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"meetingId":    meetingID,
		"participants": h.orch.Participants(meetingID),
	})
}
