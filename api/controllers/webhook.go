package controllers

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/leadflow-backend/api/middleware"
	"github.com/angelmondragon/leadflow-backend/api/responses"
	"github.com/angelmondragon/leadflow-backend/internal/webhook"
	pkgerrors "github.com/angelmondragon/leadflow-backend/pkg/errors"
	"github.com/angelmondragon/leadflow-backend/pkg/logger"
)

const maxWebhookBody = 1 << 20

type webhookAccepted struct {
	Message string         `json:"message"`
	Payload map[string]any `json:"payload"`
}

type webhookStored struct {
	LeadID uuid.UUID `json:"leadId"`
}

// LeadWebhook ingests inbound lead deliveries from the messaging provider.
func LeadWebhook(svc webhook.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unable to read payload"))
			return
		}

		token := r.Header.Get(middleware.WebhookTokenHeader)
		if token == "" {
			token = r.Header.Get(middleware.WebhookTokenHeaderAlt)
		}

		result, err := svc.Ingest(r.Context(), token, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if result.Status == http.StatusAccepted {
			responses.WriteSuccessStatus(w, result.Status, webhookAccepted{Message: result.Message, Payload: result.Payload})
			return
		}
		logg.Info(logg.WithLeadID(r.Context(), result.LeadID.String()), "webhook.lead_stored")
		responses.WriteSuccessStatus(w, result.Status, webhookStored{LeadID: result.LeadID})
	}
}
