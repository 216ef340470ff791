package http

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bridgeoracle "github.com/bridgeoracle/bridgeoracle-go"
	"github.com/bridgeoracle/bridgeoracle-go/types"
)

// verifyRequest is the decoded body shared by the verify and admission
// endpoints. Field-level length checks live in the types package; the
// schema in schema.go rejects structurally bad bodies first.
type verifyRequest struct {
	Account   types.AccountID `json:"account"`
	Message   types.Message   `json:"message"`
	Signature types.Signature `json:"signature"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type admissionRejection struct {
	Error        string                      `json:"error"`
	ValidityCode *bridgeoracle.ValidityError `json:"validityCode,omitempty"`
}

type admissionResponse struct {
	Priority  uint64   `json:"priority"`
	Requires  []string `json:"requires"`
	Provides  []string `json:"provides"`
	Longevity uint64   `json:"longevity"`
	Propagate bool     `json:"propagate"`
}

type messageStateResponse struct {
	Present  bool `json:"present"`
	Verified bool `json:"verified"`
}

func decodeVerifyRequest(c *gin.Context) (*verifyRequest, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable request body"})
		return nil, false
	}

	if err := validateVerifyRequest(body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}

	var req verifyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}
	return &req, true
}

// handleVerify runs the state-mutating verification. HTTP submissions are
// unsigned-origin by construction.
func (s *Server) handleVerify(c *gin.Context) {
	req, ok := decodeVerifyRequest(c)
	if !ok {
		return
	}

	err := s.svc.VerifyMessage(c.Request.Context(), bridgeoracle.NoneOrigin(), req.Account, req.Message, req.Signature)
	if err != nil {
		s.log.Debug("verify rejected", zap.Error(err))
		c.JSON(statusForError(err), errorResponse{Error: errorCode(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"verified": true,
		"account":  req.Account,
	})
}

// handleAdmissionCheck runs the stateless admission decision and returns
// the ticket the pending pool would act on.
func (s *Server) handleAdmissionCheck(c *gin.Context) {
	req, ok := decodeVerifyRequest(c)
	if !ok {
		return
	}

	ticket, err := s.svc.CheckAdmission(c.Request.Context(), req.Account, req.Message, req.Signature)
	if err != nil {
		rejection := admissionRejection{Error: errorCode(err)}
		if code, ok := bridgeoracle.ValidityCode(err); ok {
			rejection.ValidityCode = &code
		}
		c.JSON(statusForError(err), rejection)
		return
	}

	c.JSON(http.StatusOK, admissionResponse{
		Priority:  ticket.Priority,
		Requires:  hexTags(ticket.Requires),
		Provides:  hexTags(ticket.Provides),
		Longevity: ticket.Longevity,
		Propagate: ticket.Propagate,
	})
}

// handleMessageState reports the stored verification flag for a message.
func (s *Server) handleMessageState(c *gin.Context) {
	message, err := types.ParseMessage(c.Param("message"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	verified, present, err := s.svc.MessageState(message)
	if err != nil {
		s.log.Error("message state lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "storage failure"})
		return
	}

	c.JSON(http.StatusOK, messageStateResponse{Present: present, Verified: verified})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": bridgeoracle.Version})
}

// statusForError maps service failures onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, bridgeoracle.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, bridgeoracle.ErrAlreadyVerified):
		return http.StatusConflict
	case errors.Is(err, bridgeoracle.ErrInvalidSignature),
		errors.Is(err, bridgeoracle.ErrInvalidSigner):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorCode extracts the stable machine-readable code, falling back to the
// raw error text for unexpected failures.
func errorCode(err error) string {
	var ve *bridgeoracle.VerifyError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return err.Error()
}

func hexTags(tags [][]byte) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, "0x"+hex.EncodeToString(tag))
	}
	return out
}
