package compileserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// EndpointFunc is a handler that returns a result instead of writing
// directly to the ResponseWriter, so every endpoint shares one place that
// decides how to log and serialize it. Grounded on server/endpoints.go's
// EndpointFunc/Endpoint pair.
type EndpointFunc func(req *http.Request) EndpointResult

// Endpoint adapts an EndpointFunc to an http.HandlerFunc, recovering from
// panics and writing the returned EndpointResult.
func Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)
		result := ep(req)
		result.writeResponse(w, req)
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) {
	if p := recover(); p != nil {
		r := jsonInternalServerError("panic: %v", p)
		r.writeResponse(w, req)
	}
}

// EndpointResult is the outcome of an endpoint call: an HTTP status, an
// optional JSON body, and an internal message logged but never sent to the
// client.
type EndpointResult struct {
	status      int
	respObj     interface{}
	internalMsg string
}

func jsonResponse(status int, respObj interface{}, internalMsgFmt string, v ...interface{}) EndpointResult {
	return EndpointResult{status: status, respObj: respObj, internalMsg: sprintfOrPlain(internalMsgFmt, v...)}
}

func jsonOK(respObj interface{}, internalMsg ...interface{}) EndpointResult {
	return formatted(http.StatusOK, respObj, "OK", internalMsg)
}

func jsonCreated(respObj interface{}, internalMsg ...interface{}) EndpointResult {
	return formatted(http.StatusCreated, respObj, "created", internalMsg)
}

func jsonBadRequest(internalMsg ...interface{}) EndpointResult {
	return formatted(http.StatusBadRequest, nil, "bad request", internalMsg)
}

func jsonNotFound(internalMsg ...interface{}) EndpointResult {
	return formatted(http.StatusNotFound, nil, "not found", internalMsg)
}

func jsonUnauthorized(internalMsg ...interface{}) EndpointResult {
	return formatted(http.StatusUnauthorized, nil, "unauthorized", internalMsg)
}

func jsonInternalServerError(internalMsg ...interface{}) EndpointResult {
	return formatted(http.StatusInternalServerError, nil, "internal server error", internalMsg)
}

func formatted(status int, respObj interface{}, defaultMsg string, internalMsg []interface{}) EndpointResult {
	msgFmt := defaultMsg
	var args []interface{}
	if len(internalMsg) >= 1 {
		if s, ok := internalMsg[0].(string); ok {
			msgFmt = s
			args = internalMsg[1:]
		}
	}
	return jsonResponse(status, respObj, msgFmt, args...)
}

func sprintfOrPlain(format string, v ...interface{}) string {
	if len(v) == 0 {
		return format
	}
	return fmt.Sprintf(format, v...)
}

func (r EndpointResult) writeResponse(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.status)
	if r.respObj != nil {
		if err := json.NewEncoder(w).Encode(r.respObj); err != nil {
			log.Printf("ERROR: encode response body: %s", err.Error())
		}
	}
	log.Printf("%s %s -> HTTP-%d: %s", req.Method, req.URL.Path, r.status, r.internalMsg)
}
