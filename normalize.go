package authflow

import (
	"encoding/json"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/credport/authflow/internal/transport"
)

// previewLimit bounds the body excerpt carried by MalformedResponseError.
const previewLimit = 120

// rawResponse is the untrusted wire shape. Everything the backend may emit
// across the /auth/* endpoints is declared here once; the normalizer either
// produces a fully trusted AuthResponse from it or fails the exchange.
type rawResponse struct {
	User        *rawUserClaim   `json:"user"`
	Error       string          `json:"error"`
	Errors      []rawFieldError `json:"errors"`
	Message     string          `json:"message"`
	Token       string          `json:"token"`
	AccessToken string          `json:"accessToken"`
	DevOTP      string          `json:"devOtp"`
}

type rawUserClaim struct {
	Role                string `json:"role"`
	IsVerified          bool   `json:"isVerified"`
	RequiresPasswordSet bool   `json:"requiresPasswordSet"`
}

type rawFieldError struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

// normalizeResponse turns a raw transport response into a trusted
// AuthResponse or a classified failure.
//
// A declared non-JSON content type is MalformedResponse regardless of
// status or body text: it usually means a misrouted request, not a
// rejected credential. A JSON body with a non-success status is
// ApplicationError with the highest-priority server message. A success
// status yields the normalized response; absence of user is legal here
// because some flows (OTP resend) carry no identity.
func normalizeResponse(resp *transport.Response) (*AuthResponse, error) {
	if resp == nil {
		return nil, &MalformedResponseError{}
	}

	if !declaresJSON(resp.ContentType) {
		return nil, &MalformedResponseError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.ContentType,
			Preview:     bodyPreview(resp.Body),
		}
	}

	var raw rawResponse
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, &MalformedResponseError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.ContentType,
			Preview:     bodyPreview(resp.Body),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, applicationError(resp.StatusCode, &raw)
	}

	out := &AuthResponse{
		OK:          true,
		AccessToken: unifiedToken(&raw),
		DevOTP:      raw.DevOTP,
	}
	if raw.User != nil {
		claim := &UserClaim{
			IsVerified:          raw.User.IsVerified,
			RequiresPasswordSet: raw.User.RequiresPasswordSet,
		}
		// Canonicalization is deferred to the resolver; carry the wire role
		// through untouched so unrecognized values stay observable.
		claim.Role = Role(raw.User.Role)
		out.User = claim
	}
	return out, nil
}

// unifiedToken folds the backend's two historical token fields into one.
// The newer accessToken wins when both are present.
func unifiedToken(raw *rawResponse) string {
	if raw.AccessToken != "" {
		return raw.AccessToken
	}
	return raw.Token
}

func applicationError(status int, raw *rawResponse) *ApplicationError {
	appErr := &ApplicationError{StatusCode: status}

	for _, fe := range raw.Errors {
		msg := fe.Msg
		if msg == "" {
			msg = fe.Message
		}
		if msg != "" {
			appErr.FieldErrors = append(appErr.FieldErrors, msg)
		}
	}

	switch {
	case len(appErr.FieldErrors) > 0:
		appErr.Message = strings.Join(appErr.FieldErrors, ", ")
	case raw.Error != "":
		appErr.Message = raw.Error
	case raw.Message != "":
		appErr.Message = raw.Message
	default:
		appErr.Message = "request failed"
	}

	return appErr
}

func declaresJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Fall back to a substring check for sloppy upstream headers.
		mediaType = strings.ToLower(contentType)
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func bodyPreview(body []byte) string {
	if len(body) <= previewLimit {
		return string(body)
	}
	cut := body[:previewLimit]
	// Trim only a multi-byte rune split at the cut boundary, at most
	// utf8.UTFMax-1 bytes. Bodies that are not UTF-8 keep their raw bytes;
	// the excerpt exists to be looked at, not decoded.
	for i := 1; i < utf8.UTFMax && i < len(cut); i++ {
		b := cut[len(cut)-i]
		if !utf8.RuneStart(b) {
			continue
		}
		if r, _ := utf8.DecodeRune(cut[len(cut)-i:]); r == utf8.RuneError {
			cut = cut[:len(cut)-i]
		}
		break
	}
	return string(cut)
}
