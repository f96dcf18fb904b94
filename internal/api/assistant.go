package api

import (
	"net/http"

	"restaupilot/internal/assistant"
	"restaupilot/internal/monitoring"

	"github.com/gin-gonic/gin"
)

type messageRequest struct {
	Message string `json:"message"`
}

// AssistantObserver records assistant replies in metrics and the monitor.
func AssistantObserver(metrics *monitoring.Metrics, monitor *monitoring.Monitor) assistant.Observer {
	return func(r assistant.Reply) {
		metrics.ObserveAssistantReply(r.Source)
		monitor.Inc("assistant_replies")
		if r.Kind == assistant.KindCommand {
			metrics.ObserveVoiceCommand(r.Command)
			monitor.Inc("voice_commands")
		}
	}
}

// AssistantMessage answers one chat or voice message.
func (a *DashboardAPI) AssistantMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	reply, err := a.Assistant.Handle(c.Request.Context(), restaurantFrom(c).ID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}
