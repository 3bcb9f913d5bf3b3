package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tablecreole/contact-api/internal/models"
	"github.com/tablecreole/contact-api/internal/pipeline"
	"github.com/tablecreole/contact-api/internal/ratelimit"
)

var tagNameOnce sync.Once

// useJSONFieldNames makes validator errors report json tag names ("name",
// "email") instead of Go struct field names, so the 400 payload matches what
// the form actually sent.
func useJSONFieldNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// User-facing copy. Accepted and silently rejected submissions get the exact
// same body: automated senders must not learn they were filtered.
const (
	msgAccepted   = "Merci ! Votre demande a bien été envoyée."
	msgBadRequest = "Requête invalide."
	msgSendFailed = "L'envoi a échoué. Veuillez réessayer."
)

// fieldError is one entry of the 400 response's errors array.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RegisterContactRoutes registers the submission endpoint.
//
// POST /api/contact
//   - 200 on acceptance and on silent spam/challenge rejection (identical body)
//   - 400 with per-field errors on schema violations
//   - 500 when the notifier reports failure
//
// Rate limiting (429) runs as middleware before this handler.
func RegisterContactRoutes(r gin.IRoutes, pipe *pipeline.Pipeline, debug bool) {
	useJSONFieldNames()

	r.POST("/api/contact", func(c *gin.Context) {
		clientID := c.GetString(ratelimit.ClientIDKey)
		requestID := RequestID(c)

		var sub models.Submission
		if err := c.ShouldBindJSON(&sub); err != nil {
			fieldErrs := bindErrors(err)
			if debug {
				slog.Debug("submission failed validation",
					"request_id", requestID, "client", clientID, "errors", fieldErrs)
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"message": msgBadRequest,
				"errors":  fieldErrs,
			})
			return
		}

		res := pipe.Process(c.Request.Context(), &sub)

		switch res.Outcome {
		case pipeline.NotifyFailed:
			slog.Error("notification failed",
				"request_id", requestID, "client", clientID, "error", res.Err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": msgSendFailed})
			return

		case pipeline.ChallengeFailed:
			slog.Info("submission rejected",
				"request_id", requestID, "client", clientID, "reason", "challenge_failed")

		case pipeline.SpamRejected:
			slog.Info("submission rejected",
				"request_id", requestID, "client", clientID, "reason", res.Reason)
			if debug {
				slog.Debug("rejected submission detail",
					"request_id", requestID, "name", sub.Name, "email", sub.Email,
					"subject", sub.Subject, "service_type", sub.ServiceType)
			}

		case pipeline.Accepted:
			slog.Info("submission accepted",
				"request_id", requestID, "client", clientID, "booking", sub.IsBooking())
		}

		// Single success path for accepted and rejected alike.
		c.JSON(http.StatusOK, gin.H{"message": msgAccepted})
	})
}

// bindErrors turns a gin binding failure into the per-field errors array.
func bindErrors(err error) []fieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{Field: fe.Field(), Message: messageFor(fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []fieldError{{Field: field, Message: "type invalide"}}
	}

	return []fieldError{{Field: "body", Message: "JSON invalide"}}
}

// messageFor maps a validator tag to a short French message.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "champ requis"
	case "email":
		return "adresse email invalide"
	case "min":
		return "minimum " + fe.Param() + " caractères"
	case "max":
		return "maximum " + fe.Param() + " caractères"
	default:
		return "valeur invalide"
	}
}
