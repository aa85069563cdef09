package api

import (
	"net/http"

	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type messageHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newMessageHandler() messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder: NewResponder(logger),
		logger:    logger,
	}
}

// getInbox lists the user's messages and marks the unread ones read
// @Summary Inbox
// @Description Messages are returned newest first with the read state they had before this request. Administrators do not see messages sent by administrators.
// @Tags Messages
// @Produce json
// @Success 200 {object} services.Inbox
// @Failure 401 {object} map[string]interface{}
// @Router /messages [get]
func (h messageHandler) getInbox() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ctxGetView(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		inbox, err := view.Inbox(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, inbox)
	}
}
