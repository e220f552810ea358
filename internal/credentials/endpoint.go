package credentials

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/majorcontext/awscreds/internal/log"
)

// EndpointHandler serves the resolved provider's credentials over HTTP in
// the credential_process format, which is also what the SDK's container
// credential sources (AWS_CONTAINER_CREDENTIALS_FULL_URI) accept. Caching
// and refresh are the provider's concern, not the handler's.
type EndpointHandler struct {
	provider  aws.CredentialsProvider
	authToken string
}

// NewEndpointHandler creates a credential endpoint over the given provider.
func NewEndpointHandler(p aws.CredentialsProvider) *EndpointHandler {
	return &EndpointHandler{provider: p}
}

// SetAuthToken requires `Authorization: Bearer <token>` on every request.
func (h *EndpointHandler) SetAuthToken(token string) {
	h.authToken = token
}

// ServeHTTP implements http.Handler.
func (h *EndpointHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.authToken != "" {
		auth := r.Header.Get("Authorization")
		expected := "Bearer " + h.authToken
		// Constant-time comparison to prevent timing attacks.
		if auth == "" || subtle.ConstantTimeCompare([]byte(auth), []byte(expected)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	creds, err := h.provider.Retrieve(r.Context())
	if err != nil {
		// Log the detailed error server-side; keep the response generic.
		log.Error("credential retrieve failed", "error", err)
		http.Error(w, "failed to get credentials", http.StatusInternalServerError)
		return
	}

	body, err := ProcessJSON(creds)
	if err != nil {
		log.Error("encoding credentials failed", "error", err)
		http.Error(w, "failed to encode credentials", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		// Response already started, can't send an HTTP error.
		log.Warn("writing credential response failed", "error", err)
	}
}

// processOutput is the credential_process exchange format.
// See: https://docs.aws.amazon.com/cli/latest/userguide/cli-configure-sourcing-external.html
type processOutput struct {
	Version         int    `json:"Version"`
	AccessKeyID     string `json:"AccessKeyId"`
	SecretAccessKey string `json:"SecretAccessKey"`
	SessionToken    string `json:"SessionToken,omitempty"`
	Expiration      string `json:"Expiration,omitempty"`
}

// ProcessJSON renders credentials in credential_process format. The
// Expiration field is included only for expiring credentials.
func ProcessJSON(creds aws.Credentials) ([]byte, error) {
	out := processOutput{
		Version:         1,
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
	}
	if creds.CanExpire {
		out.Expiration = creds.Expires.Format(time.RFC3339)
	}
	return json.Marshal(out)
}
