package http

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ConfidenceRequest carries the new score. It may be sent as a JSON number
// or as a string holding an integer.
type ConfidenceRequest struct {
	New json.RawMessage `json:"new"`
}

type ConfidenceResponse struct {
	New int `json:"new"`
}

type ConfidenceController struct {
	store ConfidenceStore
}

func NewConfidenceController(store ConfidenceStore) *ConfidenceController {
	return &ConfidenceController{store: store}
}

// Set replaces the confidence score of one of the user's words
// POST /words/confidence/:id
func (cc *ConfidenceController) Set(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "word")
	if !ok {
		return
	}

	var req ConfidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	value, err := parseConfidence(req.New)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "new"})
		return
	}

	if err := cc.store.SetConfidence(GetUserID(c), id, value); err != nil {
		respondStoreError(c, err, "word", "set confidence")
		return
	}
	c.JSON(http.StatusOK, ConfidenceResponse{New: value})
}

type confidenceError string

func (e confidenceError) Error() string { return string(e) }

const (
	errConfidenceMissing    confidenceError = "'new' is required"
	errConfidenceNotInteger confidenceError = "'new' must be an integer"
)

func parseConfidence(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errConfidenceMissing
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, errConfidenceNotInteger
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, errConfidenceNotInteger
		}
		return n, nil
	}

	var num json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&num); err != nil {
		return 0, errConfidenceNotInteger
	}
	if n, err := strconv.Atoi(num.String()); err == nil {
		return n, nil
	}
	// 12.0 and 1e2 are integers written as floats.
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errConfidenceNotInteger
	}
	return int(f), nil
}
