package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/openclintech/go-triage-server/internal/triage"
)

const maxBodyBytes = 1 << 16

// fieldError reports a missing or malformed request field.
type fieldError struct {
	Field  string
	Reason string
}

func (e *fieldError) Error() string {
	return e.Field + ": " + e.Reason
}

var errInvalidJSON = errors.New("invalid JSON body")

type addRequest struct {
	Name   string
	Vitals triage.Vitals
}

type updateRequest struct {
	ID     int
	Vitals triage.Vitals
}

type body map[string]json.RawMessage

func readBody(r *http.Request) (body, error) {
	defer r.Body.Close()

	var b body
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	if b == nil {
		return nil, errInvalidJSON
	}
	return b, nil
}

// integer accepts a JSON number or a string holding one, within the 32-bit
// range.
func (b body) integer(name string) (int32, error) {
	raw, ok := b[name]
	if !ok {
		return 0, &fieldError{Field: name, Reason: "required"}
	}

	s := strings.TrimSpace(string(raw))
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		s = strings.TrimSpace(quoted)
	}

	n, err := strconv.ParseInt(s, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return 0, &fieldError{Field: name, Reason: "out of range"}
	}
	if err != nil {
		return 0, &fieldError{Field: name, Reason: "must be an integer"}
	}
	return int32(n), nil
}

func (b body) optionalString(name string) (string, error) {
	raw, ok := b[name]
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &fieldError{Field: name, Reason: "must be a string"}
	}
	return s, nil
}

func (b body) vitals() (triage.Vitals, error) {
	var v triage.Vitals
	for _, f := range []struct {
		name string
		dst  *int32
	}{
		{"age", &v.Age},
		{"severity", &v.Severity},
		{"hr", &v.HeartRate},
		{"sbp", &v.SystolicBP},
		{"spo2", &v.OxygenSaturation},
	} {
		n, err := b.integer(f.name)
		if err != nil {
			return triage.Vitals{}, err
		}
		*f.dst = n
	}
	return v, nil
}

func decodeAdd(r *http.Request) (addRequest, error) {
	b, err := readBody(r)
	if err != nil {
		return addRequest{}, err
	}
	name, err := b.optionalString("name")
	if err != nil {
		return addRequest{}, err
	}
	v, err := b.vitals()
	if err != nil {
		return addRequest{}, err
	}
	return addRequest{Name: name, Vitals: v}, nil
}

func decodeUpdate(r *http.Request) (updateRequest, error) {
	b, err := readBody(r)
	if err != nil {
		return updateRequest{}, err
	}
	id, err := b.integer("id")
	if err != nil {
		return updateRequest{}, err
	}
	v, err := b.vitals()
	if err != nil {
		return updateRequest{}, err
	}
	return updateRequest{ID: int(id), Vitals: v}, nil
}

// badRequestMessage turns a decode error into the client-facing message.
func badRequestMessage(err error) string {
	var fe *fieldError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	if errors.Is(err, errInvalidJSON) {
		return errInvalidJSON.Error()
	}
	return "bad request"
}
