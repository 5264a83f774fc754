package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/xml"
	"net/http"
	"sort"

	"github.com/academiebarbier/marcel-backend/internal/application/services"
	"github.com/academiebarbier/marcel-backend/internal/infrastructure/observability"
)

// fallbackReply is sent when the turn fails hard (session store down): the
// caller gets a safe answer and the carrier gets a 200 so it does not retry
const fallbackReply = "Désolé, on a un pépin technique. Appelle-nous directement et on va s'occuper de toi!"

// SMSWebhookHandler receives inbound SMS webhooks in the Twilio form
// encoding (From/Body) and answers with TwiML
type SMSWebhookHandler struct {
	conversations *services.ConversationService
	authToken     string
	publicURL     string
}

// NewSMSWebhookHandler creates the webhook handler. The auth token enables
// signature validation; an empty token skips it (local development).
func NewSMSWebhookHandler(conversations *services.ConversationService, authToken, publicURL string) *SMSWebhookHandler {
	return &SMSWebhookHandler{
		conversations: conversations,
		authToken:     authToken,
		publicURL:     publicURL,
	}
}

// twimlResponse is the reply document the carrier converts back to SMS
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// HandleInbound processes one inbound SMS turn
func (h *SMSWebhookHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form payload", http.StatusBadRequest)
		return
	}

	if h.authToken != "" && !h.verifySignature(r) {
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	if from == "" {
		http.Error(w, "Missing From parameter", http.StatusBadRequest)
		return
	}

	reply, err := h.conversations.HandleTurn(ctx, from, body)
	if err != nil {
		logger.Error().Err(err).Str("from", from).Msg("turn failed, sending fallback reply")
		reply = fallbackReply
	}

	h.writeTwiML(w, reply)
}

// verifySignature checks the X-Twilio-Signature header: HMAC-SHA1 over the
// request URL concatenated with the sorted POST parameters, base64 encoded
func (h *SMSWebhookHandler) verifySignature(r *http.Request) bool {
	signature := r.Header.Get("X-Twilio-Signature")
	if signature == "" {
		return false
	}

	keys := make([]string, 0, len(r.PostForm))
	for key := range r.PostForm {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	payload := h.publicURL + r.URL.Path
	for _, key := range keys {
		payload += key + r.PostForm.Get(key)
	}

	mac := hmac.New(sha1.New, []byte(h.authToken))
	mac.Write([]byte(payload))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}

func (h *SMSWebhookHandler) writeTwiML(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(twimlResponse{Message: message}); err != nil {
		observability.GetLogger().Error().Err(err).Msg("failed to encode TwiML response")
	}
}
